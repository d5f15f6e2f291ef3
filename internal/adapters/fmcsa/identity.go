package fmcsa

import (
	"context"
	"encoding/json"
	"fmt"

	"freight-match-service/internal/domain"
	"freight-match-service/internal/platform/obs"
	"freight-match-service/internal/ports"
)

type carrierResponse struct {
	Content []struct {
		Carrier struct {
			DotNumber             json.Number `json:"dotNumber"`
			LegalName             string      `json:"legalName"`
			StatusCode            string      `json:"statusCode"`
			AllowedToOperate      string      `json:"allowedToOperate"`
			BipdInsuranceOnFile   json.Number `json:"bipdInsuranceOnFile"`
			BipdInsuranceRequired json.Number `json:"bipdInsuranceRequired"`
			SafetyRating          string      `json:"safetyRating"`
		} `json:"carrier"`
	} `json:"content"`
}

// Identity resolves a normalized MC number to the carrier's base record via
// the docket-number endpoint. An empty result set means the carrier does not
// exist as far as FMCSA is concerned.
func (c *Client) Identity(ctx context.Context, mcNumber string) (_ ports.IdentitySnapshot, err error) {
	defer obs.Time(ctx, c.log, "fmcsa.Identity")(&err)

	var decoded carrierResponse
	if err := c.getJSON(ctx, "/carriers/docket-number/"+mcNumber, &decoded); err != nil {
		if isNotFound(err) {
			return ports.IdentitySnapshot{}, fmt.Errorf("identity mc=%s: %w", mcNumber, domain.ErrCarrierNotFound)
		}
		return ports.IdentitySnapshot{}, fmt.Errorf("identity mc=%s: %w", mcNumber, err)
	}

	if len(decoded.Content) == 0 {
		return ports.IdentitySnapshot{}, fmt.Errorf("identity mc=%s: %w", mcNumber, domain.ErrCarrierNotFound)
	}

	carrier := decoded.Content[0].Carrier
	if carrier.DotNumber.String() == "" {
		return ports.IdentitySnapshot{}, fmt.Errorf("identity mc=%s: record has no DOT number", mcNumber)
	}

	onFile, _ := carrier.BipdInsuranceOnFile.Float64()
	required, _ := carrier.BipdInsuranceRequired.Float64()

	return ports.IdentitySnapshot{
		DOTNumber:         carrier.DotNumber.String(),
		LegalName:         carrier.LegalName,
		StatusCode:        carrier.StatusCode,
		AllowedToOperate:  carrier.AllowedToOperate == "Y",
		InsuranceOnFile:   onFile,
		InsuranceRequired: required,
		SafetyRating:      carrier.SafetyRating,
	}, nil
}
