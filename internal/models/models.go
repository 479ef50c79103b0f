// Package models holds the storefront's persisted entities and request payloads.
package models

import "github.com/shopspring/decimal"

func init() {
	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}
