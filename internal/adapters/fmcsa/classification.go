package fmcsa

import (
	"context"
	"fmt"
	"strings"

	"freight-match-service/internal/platform/obs"
)

type classificationResponse struct {
	Content []struct {
		OperationClassDesc string `json:"operationClassDesc"`
	} `json:"content"`
}

// Classifications returns the carrier's operation-classification labels.
// The labels feed eligibility reporting only; scoring never reads them.
func (c *Client) Classifications(ctx context.Context, dotNumber string) (_ []string, err error) {
	defer obs.Time(ctx, c.log, "fmcsa.Classifications")(&err)

	var decoded classificationResponse
	if err := c.getJSON(ctx, "/carriers/"+dotNumber+"/operation-classification", &decoded); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("classification dot=%s: %w", dotNumber, err)
	}

	labels := make([]string, 0, len(decoded.Content))
	for _, item := range decoded.Content {
		if l := strings.TrimSpace(item.OperationClassDesc); l != "" {
			labels = append(labels, l)
		}
	}

	return labels, nil
}
