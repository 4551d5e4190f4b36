package commands

import (
	"encoding/json"
	"errors"

	"github.com/aquamarinepk/aqm"
)

const defaultFrontdeskURL = "http://localhost:8085"

func frontdeskClient(config *aqm.Config) *aqm.ServiceClient {
	return aqm.NewServiceClient(config.GetStringOrDef("frontdesk.url", defaultFrontdeskURL))
}

// decodeSuccessResponse copies the dynamic response payload into dest.
func decodeSuccessResponse(resp *aqm.SuccessResponse, dest interface{}) error {
	if resp == nil {
		return errors.New("nil success response")
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, dest)
}
