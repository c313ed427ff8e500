package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"storefront/internal/apis/shop/responses"
)

type teamsResp struct {
	Teams []responses.Team `json:"teams"`
}

// Teams fetches the showcase team list for a category
// ({group}/{path}/team). The endpoint normally answers with a bare array,
// older deployments wrap it in {teams: [...]}.
func (c *Client) Teams(ctx context.Context, group, path string) ([]responses.Team, error) {
	req, err := c.newReq(ctx, http.MethodGet, fmt.Sprintf("/%s/%s/team", group, path))
	if err != nil {
		return nil, err
	}

	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, ParseAPIError(resp.StatusCode, []byte(strings.TrimSpace(string(b))))
	}

	var arr []responses.Team
	if err := json.Unmarshal(b, &arr); err == nil {
		return arr, nil
	}

	var wrapped teamsResp
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, fmt.Errorf("teams %s/%s: bad json body=%s", group, path, string(b[:min(len(b), 1024)]))
	}
	return wrapped.Teams, nil
}
