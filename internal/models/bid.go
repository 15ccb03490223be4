package models

type (
	TransitMethod  string // Способ транзита автомобиля
	TookTitle      string // Статус получения тайтла
	InspectionDone string // Статус прохождения инспекции
	AcceptanceType string // Тип приёмки автомобиля
)

const (
	TransitT1             TransitMethod = "t1"              // Транзит по T1
	TransitReExport       TransitMethod = "re_export"       // Реэкспорт
	TransitWithoutOpening TransitMethod = "without_openning" // Без открытия контейнера

	TookTitleNo          TookTitle = "no"          // Тайтл не забран
	TookTitleYes         TookTitle = "yes"         // Тайтл забран
	TookTitleConsignment TookTitle = "consignment" // Тайтл на консигнации

	InspectionNo          InspectionDone = "no"          // Инспекция не пройдена
	InspectionYes         InspectionDone = "yes"         // Инспекция пройдена
	InspectionConsignment InspectionDone = "consignment" // Инспекция на консигнации

	AcceptanceWithReExport    AcceptanceType = "with_re_export"    // Приёмка с реэкспортом
	AcceptanceWithoutReExport AcceptanceType = "without_re_export" // Приёмка без реэкспорта
)

// Bid представляет заявку на ввоз автомобиля.
// Поля заполняются постепенно, по мере прохождения заявки через этапы.
type Bid struct {
	ID              int     `json:"id"`
	Client          Client  `json:"client"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	Vin             string  `json:"vin"`
	Price           int     `json:"price"`
	ContainerNumber string  `json:"container_number"`
	ArrivalDate     string  `json:"arrival_date"`
	Transporter     string  `json:"transporter"`
	Recipient       string  `json:"recipient"`

	// Поля логиста.
	TransitMethod     *string `json:"transit_method"`
	Location          *string `json:"location"`
	RequestedTitle    bool    `json:"requested_title"`
	NotifiedParking   bool    `json:"notified_parking"`
	NotifiedInspector bool    `json:"notified_inspector"`
	AcceptanceType    *string `json:"acceptance_type"`
	AcceptanceDate    *string `json:"acceptance_date"`

	// Поля менеджера открытия.
	OpenningDate   *string `json:"openning_date"`
	Opened         bool    `json:"opened"`
	ManagerComment *string `json:"manager_comment"`

	// Поля тайтл-менеджера.
	PickupAddress              *string `json:"pickup_address"`
	TookTitle                  *string `json:"took_title"`
	TitleCollectionDate        *string `json:"title_collection_date"`
	NotifiedLogisticianByTitle bool    `json:"notified_logistician_by_title"`

	// Поля инспектора.
	TransitNumber                  *string `json:"transit_number"`
	InspectionDone                 *string `json:"inspection_done"`
	InspectionDate                 *string `json:"inspection_date"`
	NumberSent                     bool    `json:"number_sent"`
	NumberSentDate                 *string `json:"number_sent_date"`
	InspectionPaid                 bool    `json:"inspection_paid"`
	InspectorComment               *string `json:"inspector_comment"`
	NotifiedLogisticianByInspector bool    `json:"notified_logistician_by_inspector"`

	// Поля реэкспорта.
	Export            bool `json:"export"`
	PreparedDocuments bool `json:"prepared_documents"`

	// Поля приёмщика.
	VehicleArrivalDate *string `json:"vehicle_arrival_date"`
	ReceiveVehicle     bool    `json:"receive_vehicle"`
	ReceiveDocuments   bool    `json:"receive_documents"`
	FullAcceptance     bool    `json:"full_acceptance"`
	ReceiverKeysNumber *string `json:"receiver_keys_number"`

	// Флаги подтверждения, выставляются смежными ролями.
	ApprovedByInspector bool `json:"approved_by_inspector"`
	ApprovedByTitle     bool `json:"approved_by_title"`
	ApprovedByReExport  bool `json:"approved_by_re_export"`

	// Идентификатор перевозчика, вычисляется сервером при обновлении.
	VehicleTransporter *int `json:"vehicle_transporter,omitempty"`
}

// BidListResponse представляет ответ на запрос списка заявок,
// сгруппированных по состоянию обработки. Ключ completed присутствует
// только при запросе с фильтром по статусу.
type BidListResponse struct {
	Untouched  []Bid `json:"untouched"`
	InProgress []Bid `json:"in_progress"`
	Completed  []Bid `json:"completed,omitempty"`
}

// RejectBidRequest представляет структуру запроса на отклонение заявки.
type RejectBidRequest struct {
	Comment string `json:"comment"`
}

// RejectBidResponse представляет ответ на отклонение заявки.
// По значению transit_method клиент определяет, из какого списка убрать заявку.
type RejectBidResponse struct {
	TransitMethod *string `json:"transit_method"`
}
