package fmcsa

import (
	"context"
	"fmt"

	"freight-match-service/internal/platform/obs"
	"freight-match-service/internal/ports"
)

type authorityResponse struct {
	Content []struct {
		CarrierAuthority struct {
			CommonAuthorityStatus   string `json:"commonAuthorityStatus"`
			ContractAuthorityStatus string `json:"contractAuthorityStatus"`
			AuthorizedForProperty   string `json:"authorizedForProperty"`
		} `json:"carrierAuthority"`
	} `json:"content"`
}

// Authorities returns the carrier's operating-authority records. Zero records
// is a valid answer; a 404 is treated the same way since some dockets simply
// have no authority filed.
func (c *Client) Authorities(ctx context.Context, dotNumber string) (_ []ports.AuthorityRecord, err error) {
	defer obs.Time(ctx, c.log, "fmcsa.Authorities")(&err)

	var decoded authorityResponse
	if err := c.getJSON(ctx, "/carriers/"+dotNumber+"/authority", &decoded); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("authority dot=%s: %w", dotNumber, err)
	}

	records := make([]ports.AuthorityRecord, 0, len(decoded.Content))
	for _, item := range decoded.Content {
		a := item.CarrierAuthority
		records = append(records, ports.AuthorityRecord{
			CommonAuthority:       a.CommonAuthorityStatus,
			ContractAuthority:     a.ContractAuthorityStatus,
			AuthorizedForProperty: a.AuthorizedForProperty == "Y",
		})
	}

	return records, nil
}
