package domain

import "errors"

var ErrMeasurementNotFound = errors.New("measurement not found")

// Measurement is a body-measurement set taken for a client. All sizes are
// required and validated at the operation boundary before any write.
type Measurement struct {
	ID        string  `json:"id"`
	ClientID  string  `json:"clientId"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	ChestSize float64 `json:"chestSize"`
	WaistSize float64 `json:"waistSize"`
	HipSize   float64 `json:"hipSize"`
}
