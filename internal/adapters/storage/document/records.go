package document

import (
	"bytes"
	"encoding/json"

	"pet-care-log/internal/domain/carelogs"
	"pet-care-log/internal/domain/settings"
	"pet-care-log/internal/domain/weightlogs"
)

// Formato persistido (camelCase). Los campos desconocidos se ignoran al leer.

type actionsRecord struct {
	Food       bool `json:"food"`
	Water      bool `json:"water"`
	Litter     bool `json:"litter"`
	Grooming   bool `json:"grooming,omitempty"`
	Medication bool `json:"medication,omitempty"`
}

type careLogRecord struct {
	ID            string        `json:"id"`
	Timestamp     int64         `json:"timestamp"`
	Actions       actionsRecord `json:"actions"`
	StoolType     string        `json:"stoolType,omitempty"`
	UrineStatus   string        `json:"urineStatus,omitempty"`
	IsLitterClean bool          `json:"isLitterClean,omitempty"`
	Weight        *float64      `json:"weight,omitempty"`
	Author        string        `json:"author"`
	Note          string        `json:"note,omitempty"`
}

type weightLogRecord struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Weight    float64 `json:"weight"`
	Author    string  `json:"author"`
}

type petRecord struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Birthday string `json:"birthday"`
}

type ownerRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type settingsRecord struct {
	Pet          petRecord     `json:"pet"`
	Owners       []ownerRecord `json:"owners"`
	IsConfigured bool          `json:"isConfigured"`
}

func decodeCareLogs(body []byte) ([]carelogs.CareLog, error) {
	var recs []careLogRecord
	if err := unmarshal(body, &recs); err != nil {
		return nil, err
	}
	out := make([]carelogs.CareLog, 0, len(recs))
	for _, r := range recs {
		out = append(out, carelogs.CareLog{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Actions: carelogs.Actions{
				Food:       r.Actions.Food,
				Water:      r.Actions.Water,
				Litter:     r.Actions.Litter,
				Grooming:   r.Actions.Grooming,
				Medication: r.Actions.Medication,
			},
			StoolType:     carelogs.StoolType(r.StoolType),
			UrineStatus:   carelogs.UrineStatus(r.UrineStatus),
			IsLitterClean: r.IsLitterClean,
			Weight:        r.Weight,
			Author:        r.Author,
			Note:          r.Note,
		})
	}
	return out, nil
}

func encodeCareLogs(items []carelogs.CareLog) ([]byte, error) {
	recs := make([]careLogRecord, 0, len(items))
	for _, l := range items {
		recs = append(recs, careLogRecord{
			ID:        l.ID,
			Timestamp: l.Timestamp,
			Actions: actionsRecord{
				Food:       l.Actions.Food,
				Water:      l.Actions.Water,
				Litter:     l.Actions.Litter,
				Grooming:   l.Actions.Grooming,
				Medication: l.Actions.Medication,
			},
			StoolType:     string(l.StoolType),
			UrineStatus:   string(l.UrineStatus),
			IsLitterClean: l.IsLitterClean,
			Weight:        l.Weight,
			Author:        l.Author,
			Note:          l.Note,
		})
	}
	return json.Marshal(recs)
}

func decodeWeightLogs(body []byte) ([]weightlogs.WeightLog, error) {
	var recs []weightLogRecord
	if err := unmarshal(body, &recs); err != nil {
		return nil, err
	}
	out := make([]weightlogs.WeightLog, 0, len(recs))
	for _, r := range recs {
		out = append(out, weightlogs.WeightLog(r))
	}
	return out, nil
}

func encodeWeightLogs(items []weightlogs.WeightLog) ([]byte, error) {
	recs := make([]weightLogRecord, 0, len(items))
	for _, w := range items {
		recs = append(recs, weightLogRecord(w))
	}
	return json.Marshal(recs)
}

func decodeSettings(body []byte) (settings.AppSettings, error) {
	if isEmpty(body) {
		return settings.Default(), nil
	}
	var rec settingsRecord
	if err := unmarshal(body, &rec); err != nil {
		return settings.AppSettings{}, err
	}

	s := settings.AppSettings{
		Pet: settings.PetProfile{
			Name:     rec.Pet.Name,
			Type:     settings.PetType(rec.Pet.Type),
			Birthday: rec.Pet.Birthday,
		},
		Owners:       make([]settings.Owner, 0, len(rec.Owners)),
		IsConfigured: rec.IsConfigured,
	}
	if s.Pet.Type == "" {
		s.Pet.Type = settings.PetTypeCat
	}
	for _, o := range rec.Owners {
		s.Owners = append(s.Owners, settings.Owner(o))
	}
	return s, nil
}

func encodeSettings(s settings.AppSettings) ([]byte, error) {
	rec := settingsRecord{
		Pet: petRecord{
			Name:     s.Pet.Name,
			Type:     string(s.Pet.Type),
			Birthday: s.Pet.Birthday,
		},
		Owners:       make([]ownerRecord, 0, len(s.Owners)),
		IsConfigured: s.IsConfigured,
	}
	for _, o := range s.Owners {
		rec.Owners = append(rec.Owners, ownerRecord(o))
	}
	return json.Marshal(rec)
}

// unmarshal acepta cuerpo vacío o "null" como documento vacío.
func unmarshal(body []byte, v any) error {
	if isEmpty(body) {
		return nil
	}
	return json.Unmarshal(body, v)
}

func isEmpty(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
