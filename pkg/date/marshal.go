package date

import (
	"encoding/json"
	"fmt"

	"github.com/daviddao/rpndate/pkg/stamp"
)

// wireDate is the serialized form of a Date. Datev and Valid are output
// only; decoding rebuilds them from Dateo, Deet and Npas.
type wireDate struct {
	Dateo stamp.Stamp `json:"dateo" yaml:"dateo"`
	Deet  float64     `json:"deet" yaml:"deet"`
	Npas  float64     `json:"npas" yaml:"npas"`
	Datev stamp.Stamp `json:"datev" yaml:"datev"`
	Valid string      `json:"valid" yaml:"valid"`
}

func (d *Date) wire() wireDate {
	return wireDate{
		Dateo: d.origin,
		Deet:  d.deet,
		Npas:  d.npas,
		Datev: d.Valid(),
		Valid: stamp.FormatPrint(d.Print()),
	}
}

// MarshalJSON implements json.Marshaler.
func (d *Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

// UnmarshalJSON implements json.Unmarshaler. Only dateo, deet and npas are
// read; datev is always derived.
func (d *Date) UnmarshalJSON(data []byte) error {
	var w wireDate
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode date: %w", err)
	}
	d.origin, d.deet, d.npas = w.Dateo, w.Deet, w.Npas
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d *Date) MarshalYAML() (interface{}, error) {
	return d.wire(), nil
}
