package ccpl

import (
	"errors"
	"fmt"
	"slices"
)

// EventKind is a typed string discriminating the processing rule of an event.
type EventKind string

// Event kinds, matching the "order" column of the report.
const (
	KindTrade    EventKind = "trade"
	KindBuy      EventKind = "buy"
	KindSell     EventKind = "sell"
	KindExchange EventKind = "exchange"
	KindSend     EventKind = "send"
	KindDeposit  EventKind = "deposit"
)

// Event is the canonical asset-movement record. It is a closed sum type:
// the Processor switches exhaustively over the concrete types, so a new
// kind forces a compile-time update of the dispatch.
type Event interface {
	What() EventKind // What returns the kind of the event (e.g. "buy", "send").
	When() Date      // When returns the day the event occurred.
	Asset() string   // Asset returns the symbol of the asset gained or lost.
	Validate() error
}

type baseEvent struct {
	Kind   EventKind `json:"kind"`
	Date   Date      `json:"date"`
	Symbol string    `json:"asset"`
}

// What returns the kind of the event.
func (e baseEvent) What() EventKind { return e.Kind }

// When returns the day of the event.
func (e baseEvent) When() Date { return e.Date }

// Asset returns the symbol of the asset this event gains or loses.
func (e baseEvent) Asset() string { return e.Symbol }

func (e baseEvent) validate() error {
	if e.Date.IsZero() {
		return errors.New("date is missing")
	}
	if e.Symbol == "" {
		return errors.New("asset symbol is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for baseEvent.
func (e baseEvent) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("kind", e.Kind)
	w.Append("date", e.Date)
	w.Append("asset", e.Symbol)
	return w.MarshalJSON()
}

// Trade is a spot-market order from the complete trade history
// (btc_jpy pair). Quantity is signed: positive for a buy, negative for a
// sell, as exported by Coincheck.
type Trade struct {
	baseEvent
	Quantity Quantity // signed units of Asset
	Rate     Money    // price of one unit in JPY
	Gross    Money    // total JPY value of the order
}

// NewTrade creates a new Trade event.
func NewTrade(day Date, asset string, quantity Quantity, rate, gross Money) Trade {
	return Trade{
		baseEvent: baseEvent{Kind: KindTrade, Date: day, Symbol: asset},
		Quantity:  quantity,
		Rate:      rate,
		Gross:     gross,
	}
}

// Validate implements the Event interface.
func (e Trade) Validate() error {
	if err := e.baseEvent.validate(); err != nil {
		return err
	}
	if e.Quantity.IsZero() {
		return errors.New("quantity is zero")
	}
	if !e.Rate.IsPositive() {
		return errors.New("rate is not positive")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Trade.
func (e Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("quantity", e.Quantity)
	w.Append("rate", e.Rate.Decimal())
	w.Append("gross", e.Gross.Decimal())
	return w.MarshalJSON()
}

// Buy is a purchase settled in JPY (from the buys export).
type Buy struct {
	baseEvent
	Quantity Quantity // positive units of Asset
	Rate     Money    // price of one unit in JPY, derived from Gross/Quantity
	Gross    Money    // total JPY paid
}

// NewBuy creates a new Buy event.
func NewBuy(day Date, asset string, quantity Quantity, rate, gross Money) Buy {
	return Buy{
		baseEvent: baseEvent{Kind: KindBuy, Date: day, Symbol: asset},
		Quantity:  quantity,
		Rate:      rate,
		Gross:     gross,
	}
}

// Validate implements the Event interface.
func (e Buy) Validate() error {
	if err := e.baseEvent.validate(); err != nil {
		return err
	}
	if !e.Quantity.IsPositive() {
		return errors.New("quantity is not positive")
	}
	if !e.Rate.IsPositive() {
		return errors.New("rate is not positive")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Buy.
func (e Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("quantity", e.Quantity)
	w.Append("rate", e.Rate.Decimal())
	w.Append("gross", e.Gross.Decimal())
	return w.MarshalJSON()
}

// Sell is a sale settled in JPY (from the sells export).
type Sell struct {
	baseEvent
	Quantity Quantity // negative units of Asset
	Rate     Money    // price of one unit in JPY, derived from Gross/|Quantity|
	Gross    Money    // total JPY received
}

// NewSell creates a new Sell event.
func NewSell(day Date, asset string, quantity Quantity, rate, gross Money) Sell {
	return Sell{
		baseEvent: baseEvent{Kind: KindSell, Date: day, Symbol: asset},
		Quantity:  quantity,
		Rate:      rate,
		Gross:     gross,
	}
}

// Validate implements the Event interface.
func (e Sell) Validate() error {
	if err := e.baseEvent.validate(); err != nil {
		return err
	}
	if !e.Quantity.IsNegative() {
		return errors.New("quantity is not negative")
	}
	if !e.Rate.IsPositive() {
		return errors.New("rate is not positive")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Sell.
func (e Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("quantity", e.Quantity)
	w.Append("rate", e.Rate.Decimal())
	w.Append("gross", e.Gross.Decimal())
	return w.MarshalJSON()
}

// Exchange is a single transaction that disposes of one asset and acquires
// another, without touching JPY. The disposed leg is priced at the closing
// price of the From asset on that day.
type Exchange struct {
	baseEvent              // Symbol is the acquired asset
	From         string    // the disposed asset
	Quantity     Quantity  // positive units of Asset acquired
	FromQuantity Quantity  // positive units of From given up
	Origin       EventKind // "buy" or "sell": which export the record came from
}

// NewExchange creates a new Exchange event. origin is the kind of the source
// record (KindBuy or KindSell) and only affects the report label.
func NewExchange(day Date, asset, from string, quantity, fromQuantity Quantity, origin EventKind) Exchange {
	return Exchange{
		baseEvent:    baseEvent{Kind: KindExchange, Date: day, Symbol: asset},
		From:         from,
		Quantity:     quantity,
		FromQuantity: fromQuantity,
		Origin:       origin,
	}
}

// Validate implements the Event interface.
func (e Exchange) Validate() error {
	if err := e.baseEvent.validate(); err != nil {
		return err
	}
	if e.From == "" {
		return errors.New("disposed asset symbol is missing")
	}
	if !e.Quantity.IsPositive() {
		return errors.New("acquired quantity is not positive")
	}
	if !e.FromQuantity.IsPositive() {
		return errors.New("disposed quantity is not positive")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Exchange.
func (e Exchange) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("from", e.From)
	w.Append("quantity", e.Quantity)
	w.Append("fromQuantity", e.FromQuantity)
	w.Optional("origin", e.Origin)
	return w.MarshalJSON()
}

// Send is an outbound transfer. The network fee is consumed in units of the
// sent asset and is recognized as a loss at the closing price of that day.
type Send struct {
	baseEvent
	Quantity Quantity // negative units of Asset sent
	Fee      Quantity // non-negative units of Asset consumed as fee
}

// NewSend creates a new Send event.
func NewSend(day Date, asset string, quantity, fee Quantity) Send {
	return Send{
		baseEvent: baseEvent{Kind: KindSend, Date: day, Symbol: asset},
		Quantity:  quantity,
		Fee:       fee,
	}
}

// Validate implements the Event interface.
func (e Send) Validate() error {
	if err := e.baseEvent.validate(); err != nil {
		return err
	}
	if !e.Quantity.IsNegative() {
		return errors.New("quantity is not negative")
	}
	if e.Fee.IsNegative() {
		return errors.New("fee is negative")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Send.
func (e Send) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("quantity", e.Quantity)
	w.Append("fee", e.Fee)
	return w.MarshalJSON()
}

// Deposit is an inbound transfer with no intrinsic JPY price; it is valued
// at the closing price of that day.
type Deposit struct {
	baseEvent
	Quantity Quantity // positive units of Asset received
}

// NewDeposit creates a new Deposit event.
func NewDeposit(day Date, asset string, quantity Quantity) Deposit {
	return Deposit{
		baseEvent: baseEvent{Kind: KindDeposit, Date: day, Symbol: asset},
		Quantity:  quantity,
	}
}

// Validate implements the Event interface.
func (e Deposit) Validate() error {
	if err := e.baseEvent.validate(); err != nil {
		return err
	}
	if !e.Quantity.IsPositive() {
		return errors.New("quantity is not positive")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Deposit.
func (e Deposit) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(e.baseEvent)
	w.Append("quantity", e.Quantity)
	return w.MarshalJSON()
}

// SortEvents sorts events chronologically in place. The sort is stable:
// events on the same day keep their original encounter order, which matters
// because weighted-average results are order dependent.
func SortEvents(events []Event) {
	slices.SortStableFunc(events, func(a, b Event) int {
		return a.When().Compare(b.When())
	})
}

// ValidateEvents returns the first malformed event as an error, identifying
// it by kind, date and asset.
func ValidateEvents(events []Event) error {
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("invalid %s event on %s (%s): %w", e.What(), e.When(), e.Asset(), err)
		}
	}
	return nil
}
