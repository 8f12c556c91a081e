package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var client = http.Client{Timeout: time.Minute}

// apiError is the error document returned by the node.
type apiError struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// call performs the request against the node and decodes the response
// into resp when it is not nil.
func call(method string, path string, body any, resp any) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var ae apiError
		if err := json.NewDecoder(res.Body).Decode(&ae); err != nil || ae.Error == "" {
			return fmt.Errorf("node responded %s", res.Status)
		}
		if len(ae.Fields) > 0 {
			return fmt.Errorf("%s: %v", ae.Error, ae.Fields)
		}
		return errors.New(ae.Error)
	}

	if resp == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(resp)
}
