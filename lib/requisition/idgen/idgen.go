package requisitionid

import (
	"fmt"
	"strconv"
	"strings"
)

const Prefix = "REQ-"

// Next идентификатор для новой заявки по текущему размеру коллекции
func Next(existingCount int) string {
	if existingCount < 0 {
		existingCount = 0
	}
	return Format(existingCount + 1)
}

// NextAfter идентификатор больше всех существующих и не меньше Next(len(existing))
func NextAfter(existing []string) string {
	last := len(existing)
	for _, id := range existing {
		num, ok := Parse(id)
		if ok && num > last {
			last = num
		}
	}
	return Format(last + 1)
}

func Format(num int) string {
	return fmt.Sprintf("%s%03d", Prefix, num)
}

// Parse числовая часть идентификатора REQ-NNN
func Parse(id string) (int, bool) {
	if !strings.HasPrefix(id, Prefix) {
		return 0, false
	}
	num, err := strconv.Atoi(strings.TrimPrefix(id, Prefix))
	if err != nil || num < 0 {
		return 0, false
	}
	return num, true
}

// Less сравнение по числовому суффиксу
func Less(a, b string) bool {
	numA, okA := Parse(a)
	numB, okB := Parse(b)
	if okA && okB {
		return numA < numB
	}
	return a < b
}
