package stages

import "github.com/autotrips/bid-service/internal/models"

// Role представляет роль сотрудника, работающего с заявками.
type Role string

const (
	Logistician    Role = "logistician"     // Логист
	OpeningManager Role = "opening_manager" // Менеджер открытия контейнеров
	Title          Role = "title"           // Тайтл-менеджер
	Inspector      Role = "inspector"       // Инспектор
	ReExport       Role = "re_export"       // Менеджер реэкспорта
	Reciever       Role = "reciever"        // Приёмщик
	User           Role = "user"            // Клиент, этапа обработки не имеет
)

// Теги этапов, передаются бэкенду в заголовке X-Vehicle-Status
// для выбора пути валидации.
const (
	TagInitial    = "initial"
	TagLoading    = "loading"
	TagOpenning   = "openning"
	TagTitle      = "title"
	TagInspection = "inspection"
	TagReExport   = "re_export"
	TagReceiving  = "receiving"
)

// Stage описывает этап обработки заявки: тег для бэкенда, признак того,
// что этап может довести заявку до завершения, и бизнес-условия перехода.
type Stage struct {
	Role     Role
	Tag      string
	Expanded bool
	// Conditions вычисляет условия "в работе" и "завершена"
	// по заявке с уже наложенным патчем формы.
	Conditions func(b models.Bid) (inProgress, completed bool)
}

var stageByRole = map[Role]Stage{
	Logistician: {
		Role: Logistician,
		Tag:  TagInitial,
		Conditions: func(b models.Bid) (bool, bool) {
			return strOf(b.TransitMethod) != "", false
		},
	},
	OpeningManager: {
		Role: OpeningManager,
		Tag:  TagOpenning,
		Conditions: func(b models.Bid) (bool, bool) {
			return strOf(b.OpenningDate) != "", false
		},
	},
	Title: {
		Role:     Title,
		Tag:      TagTitle,
		Expanded: true,
		Conditions: func(b models.Bid) (bool, bool) {
			took := models.TookTitle(strOf(b.TookTitle))
			inProgress := b.NotifiedLogisticianByTitle
			completed := inProgress &&
				(took == models.TookTitleYes || took == models.TookTitleConsignment)
			return inProgress, completed
		},
	},
	Inspector: {
		Role: Inspector,
		Tag:  TagInspection,
		Conditions: func(b models.Bid) (bool, bool) {
			transit := models.TransitMethod(strOf(b.TransitMethod))
			done := models.InspectionDone(strOf(b.InspectionDone))
			inProgress := (transit == models.TransitWithoutOpening && b.NotifiedLogisticianByInspector) ||
				(transit == models.TransitReExport && done == models.InspectionYes)
			return inProgress, false
		},
	},
	ReExport: {
		Role:     ReExport,
		Tag:      TagReExport,
		Expanded: true,
		Conditions: func(b models.Bid) (bool, bool) {
			return b.PreparedDocuments, b.PreparedDocuments && b.Export
		},
	},
	Reciever: {
		Role:     Reciever,
		Tag:      TagReceiving,
		Expanded: true,
		Conditions: func(b models.Bid) (bool, bool) {
			return strOf(b.VehicleArrivalDate) != "", b.ReceiveVehicle && b.ReceiveDocuments
		},
	},
}

var stageByTag = func() map[string]Stage {
	m := make(map[string]Stage, len(stageByRole)+1)
	for _, s := range stageByRole {
		m[s.Tag] = s
	}
	// Форма погрузки логиста отправляется с отдельным тегом,
	// но условия перехода у неё те же.
	loading := stageByRole[Logistician]
	loading.Tag = TagLoading
	m[TagLoading] = loading
	return m
}()

// ForRole возвращает этап обработки для роли.
// Для ролей без этапа (например, user) возвращает ok=false.
func ForRole(r Role) (Stage, bool) {
	s, ok := stageByRole[r]
	return s, ok
}

// ForTag возвращает этап обработки по тегу запроса.
func ForTag(tag string) (Stage, bool) {
	s, ok := stageByTag[tag]
	return s, ok
}

// ValidTags возвращает список всех известных тегов этапов.
func ValidTags() []string {
	tags := make([]string, 0, len(stageByTag))
	for tag := range stageByTag {
		tags = append(tags, tag)
	}
	return tags
}

func strOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
