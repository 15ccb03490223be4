package store

import "github.com/autotrips/bid-service/internal/models"

// Buckets - три списка заявок, в которых заявка может находиться
// только в одном одновременно.
type Buckets struct {
	Untouched  []models.Bid
	InProgress []models.Bid
	Completed  []models.Bid
}

func (b Buckets) clone() Buckets {
	return Buckets{
		Untouched:  append([]models.Bid(nil), b.Untouched...),
		InProgress: append([]models.Bid(nil), b.InProgress...),
		Completed:  append([]models.Bid(nil), b.Completed...),
	}
}

// Contains сообщает, в скольких списках присутствует заявка.
func (b Buckets) Contains(id int) int {
	count := 0
	for _, list := range [][]models.Bid{b.Untouched, b.InProgress, b.Completed} {
		for _, bid := range list {
			if bid.ID == id {
				count++
				break
			}
		}
	}
	return count
}

// Relocate перемещает заявку между списками по бизнес-условиям этапа
// и возвращает новые списки. Запись обновляется неглубоким слиянием патча.
// Условие завершения действует только вместе с условием "в работе".
func Relocate(b Buckets, id int, patch models.BidPatch, inProgressCondition, completedCondition bool) Buckets {
	next := b.clone()

	switch {
	case inProgressCondition && completedCondition:
		// Тайтл и реэкспорт позволяют прыжок из untouched сразу в completed.
		if moved, rest, ok := extract(next.Untouched, id); ok {
			next.Untouched = rest
			if _, inProgressRest, found := extract(next.InProgress, id); found {
				next.InProgress = inProgressRest
			}
			next.Completed = append(next.Completed, patch.ApplyTo(moved))
		} else if moved, rest, ok := extract(next.InProgress, id); ok {
			next.InProgress = rest
			next.Completed = append(next.Completed, patch.ApplyTo(moved))
		} else {
			next.Completed = updateInPlace(next.Completed, id, patch)
		}
	case inProgressCondition:
		if moved, rest, ok := extract(next.Untouched, id); ok {
			next.Untouched = rest
			next.InProgress = append(next.InProgress, patch.ApplyTo(moved))
		} else {
			next.InProgress = updateInPlace(next.InProgress, id, patch)
		}
	default:
		if moved, rest, ok := extract(next.InProgress, id); ok {
			next.InProgress = rest
			next.Untouched = append(next.Untouched, patch.ApplyTo(moved))
		} else {
			next.Untouched = updateInPlace(next.Untouched, id, patch)
		}
	}
	return next
}

// extract убирает заявку из списка и возвращает её вместе с остатком.
func extract(list []models.Bid, id int) (models.Bid, []models.Bid, bool) {
	for i, bid := range list {
		if bid.ID == id {
			rest := append([]models.Bid(nil), list[:i]...)
			rest = append(rest, list[i+1:]...)
			return bid, rest, true
		}
	}
	return models.Bid{}, list, false
}

// updateInPlace обновляет заявку в списке, не меняя её позиции.
func updateInPlace(list []models.Bid, id int, patch models.BidPatch) []models.Bid {
	updated := make([]models.Bid, len(list))
	for i, bid := range list {
		if bid.ID == id {
			updated[i] = patch.ApplyTo(bid)
		} else {
			updated[i] = bid
		}
	}
	return updated
}

// removeBid убирает заявку из списка без обновления.
func removeBid(list []models.Bid, id int) []models.Bid {
	_, rest, _ := extract(list, id)
	return rest
}
