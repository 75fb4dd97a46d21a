package models

import "time"

// Now возвращает текущее время в миллисекундах, в этом формате хранятся все отметки времени.
func Now() int64 {
	return time.Now().UnixMilli()
}
