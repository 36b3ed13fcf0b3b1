package models

import "fmt"

// SubjectKind tells which subject table a certificate belongs to.
type SubjectKind int

const (
	SubjectPerson SubjectKind = iota + 1
	SubjectEquipment
)

func (k SubjectKind) String() string {
	switch k {
	case SubjectPerson:
		return "person"
	case SubjectEquipment:
		return "equipment"
	default:
		return fmt.Sprintf("SubjectKind(%d)", int(k))
	}
}

func ParseSubjectKind(s string) (SubjectKind, error) {
	switch s {
	case "person":
		return SubjectPerson, nil
	case "equipment":
		return SubjectEquipment, nil
	default:
		return 0, fmt.Errorf("unknown subject kind %q", s)
	}
}

type Person struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	TaxID  string `json:"tax_id"`
	Active bool   `json:"active"`
}

type Equipment struct {
	ID            int64  `json:"id"`
	Serial        string `json:"serial"`
	EquipmentType string `json:"equipment_type"`
	Brand         string `json:"brand"`
	Model         string `json:"model"`
	Active        bool   `json:"active"`
}

// Subject is the listing projection of either a Person or an Equipment row.
type Subject struct {
	ID     int64       `json:"id"`
	Kind   SubjectKind `json:"-"`
	Name   string      `json:"name"`
	TaxID  string      `json:"tax_id,omitempty"`
	Type   string      `json:"equipment_type,omitempty"`
	Brand  string      `json:"brand,omitempty"`
	Model  string      `json:"model,omitempty"`
	Active bool        `json:"active"`
}
