package fmcsa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"freight-match-service/internal/platform/obs"

	"go.uber.org/zap"
)

type cargoResponse struct {
	Content []struct {
		CargoClassDesc string `json:"cargoClassDesc"`
		ID             struct {
			CargoClassID json.Number `json:"cargoClassId"`
		} `json:"id"`
	} `json:"content"`
}

// FMCSA cargo classes, for entries that only carry a description.
var cargoCodeByDesc = map[string]int{
	"general freight":             1,
	"household goods":             2,
	"metal: sheets, coils, rolls": 3,
	"motor vehicles":              4,
	"drive/tow away":              5,
	"logs, poles, beams, lumber":  6,
	"building materials":          7,
	"mobile homes":                8,
	"machinery, large objects":    9,
	"fresh produce":               10,
	"liquids/gases":               11,
	"intermodal cont.":            12,
	"passengers":                  13,
	"oilfield equipment":          14,
	"livestock":                   15,
	"grain, feed, hay":            16,
	"coal/coke":                   17,
	"meat":                        18,
	"garbage/refuse":              19,
	"us mail":                     20,
	"chemicals":                   21,
	"commodities dry bulk":        22,
	"refrigerated food":           23,
	"beverages":                   24,
	"paper products":              25,
	"utilities":                   26,
	"agricultural/farm supplies":  27,
	"construction":                28,
	"water well":                  29,
	"other":                       30,
}

// CargoCodes returns the carrier's cargo classes as integers in 1..30.
//
// Entries arrive either with a numeric class id or as a free-text description
// needing table translation. Untranslatable entries are dropped with a
// warning, never treated as fatal.
func (c *Client) CargoCodes(ctx context.Context, dotNumber string) (_ []int, err error) {
	defer obs.Time(ctx, c.log, "fmcsa.CargoCodes")(&err)

	var decoded cargoResponse
	if err := c.getJSON(ctx, "/carriers/"+dotNumber+"/cargo-carried", &decoded); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cargo dot=%s: %w", dotNumber, err)
	}

	seen := make(map[int]struct{}, len(decoded.Content))
	codes := make([]int, 0, len(decoded.Content))
	for _, item := range decoded.Content {
		code := 0
		if id, err := item.ID.CargoClassID.Int64(); err == nil {
			code = int(id)
		} else if mapped, ok := cargoCodeByDesc[strings.ToLower(strings.TrimSpace(item.CargoClassDesc))]; ok {
			code = mapped
		}

		if code < 1 || code > 30 {
			c.log.Warn("dropping untranslatable cargo entry",
				zap.String("dot", dotNumber),
				zap.String("desc", item.CargoClassDesc),
			)
			continue
		}

		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}

	return codes, nil
}
