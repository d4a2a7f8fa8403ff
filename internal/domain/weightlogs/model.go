package weightlogs

import "time"

// WeightLog es un pesaje suelto, en su propia colección.
type WeightLog struct {
	ID        string
	Timestamp int64   // ms desde epoch
	Weight    float64 // kg
	Author    string
}

func (w WeightLog) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(w.Timestamp).In(loc)
}
