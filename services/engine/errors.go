package engine

import "errors"

var (
	// errOrderInFlight guards the single-order-in-flight discipline.
	errOrderInFlight = errors.New("engine: order already in flight")
	errUnknownSide   = errors.New("engine: unknown trade side")

	// ErrNoData is returned when a run is started without usable bars;
	// the simulation never operates on partial data.
	ErrNoData = errors.New("engine: no price data")
)
