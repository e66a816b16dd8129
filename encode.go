package ccpl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file handles the canonical event interchange format: a JSONL stream,
// one event per line, identified by its "kind" property. It is the format of
// the manual-adjustments file and of the export command output. It should
// remain human readable and easy to edit by hand.

// EncodeEvent writes a single event as one JSON line.
func EncodeEvent(w io.Writer, e Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("cannot encode %s event on %s: %w", e.What(), e.When(), err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeEvents writes events as a JSONL stream.
func EncodeEvents(w io.Writer, events []Event) error {
	for _, e := range events {
		if err := EncodeEvent(w, e); err != nil {
			return err
		}
	}
	return nil
}

// tradeRecord is a specialized struct for decoding trade, buy and sell lines.
type tradeRecord struct {
	Date     Date            `json:"date"`
	Asset    string          `json:"asset"`
	Quantity Quantity        `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	Gross    decimal.Decimal `json:"gross"`
}

// DecodeEvents decodes a JSONL stream of events, one per line, in the format
// produced by EncodeEvents. Lines are decoded into the concrete event type
// named by their "kind" property.
func DecodeEvents(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Kind EventKind `json:"kind"`
		}
		if err := json.Unmarshal(lineBytes, &identifier); err != nil {
			return nil, fmt.Errorf("could not identify event in line %q: %w", string(lineBytes), err)
		}

		var decoded Event
		switch identifier.Kind {
		case KindTrade, KindBuy, KindSell:
			var temp tradeRecord
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("invalid %s line %q: %w", identifier.Kind, string(lineBytes), err)
			}
			rate := M(temp.Rate, "JPY")
			gross := M(temp.Gross, "JPY")
			switch identifier.Kind {
			case KindTrade:
				decoded = NewTrade(temp.Date, temp.Asset, temp.Quantity, rate, gross)
			case KindBuy:
				decoded = NewBuy(temp.Date, temp.Asset, temp.Quantity, rate, gross)
			case KindSell:
				decoded = NewSell(temp.Date, temp.Asset, temp.Quantity, rate, gross)
			}

		case KindExchange:
			var temp struct {
				Date         Date      `json:"date"`
				Asset        string    `json:"asset"`
				From         string    `json:"from"`
				Quantity     Quantity  `json:"quantity"`
				FromQuantity Quantity  `json:"fromQuantity"`
				Origin       EventKind `json:"origin"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("invalid exchange line %q: %w", string(lineBytes), err)
			}
			decoded = NewExchange(temp.Date, temp.Asset, temp.From, temp.Quantity, temp.FromQuantity, temp.Origin)

		case KindSend:
			var temp struct {
				Date     Date     `json:"date"`
				Asset    string   `json:"asset"`
				Quantity Quantity `json:"quantity"`
				Fee      Quantity `json:"fee"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("invalid send line %q: %w", string(lineBytes), err)
			}
			decoded = NewSend(temp.Date, temp.Asset, temp.Quantity, temp.Fee)

		case KindDeposit:
			var temp struct {
				Date     Date     `json:"date"`
				Asset    string   `json:"asset"`
				Quantity Quantity `json:"quantity"`
			}
			if err := json.Unmarshal(lineBytes, &temp); err != nil {
				return nil, fmt.Errorf("invalid deposit line %q: %w", string(lineBytes), err)
			}
			decoded = NewDeposit(temp.Date, temp.Asset, temp.Quantity)

		default:
			return nil, fmt.Errorf("unknown event kind %q in line %q", identifier.Kind, string(lineBytes))
		}

		events = append(events, decoded)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
