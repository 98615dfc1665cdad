package plesk

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ksyq12/hostprov/internal/errors"
	"github.com/ksyq12/hostprov/internal/transport"
)

const agentPath = "/enterprise/control/agent.php"

// errObjectNotFound is the Plesk errcode for a missing object
const errObjectNotFound = "1013"

// call posts one packet and returns its results. A result with
// status=error becomes a transport panel error.
func (p *Provider) call(ctx context.Context, req *packet) ([]result, error) {
	body, err := xml.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode packet: %w", err)
	}

	resp, err := p.client.Do(ctx, transport.Request{
		Method:      http.MethodPost,
		Path:        agentPath,
		Body:        append([]byte(xml.Header), body...),
		ContentType: "text/xml",
	})
	if err != nil {
		return nil, err
	}

	results, err := decodeResults(resp.Body)
	if err != nil {
		return nil, transport.DecodeError(resp.Body, err)
	}
	for _, r := range results {
		if r.Status == "error" {
			return nil, transport.PanelError(strings.TrimSpace(r.ErrText), r.ErrCode)
		}
	}
	return results, nil
}

// first returns the single result of a lookup or a not-found panel error
func (p *Provider) first(ctx context.Context, req *packet, what string) (*result, error) {
	results, err := p.call(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, transport.PanelError(what+" does not exist", errObjectNotFound)
	}
	return &results[0], nil
}

// decodeResults collects every <result> and <system> element of a packet
func decodeResults(body []byte) ([]result, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	var results []result
	sawPacket := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "packet":
			sawPacket = true
		case "result", "system":
			var r result
			if err := dec.DecodeElement(&r, &start); err != nil {
				return nil, err
			}
			results = append(results, r)
		}
	}
	if !sawPacket {
		return nil, fmt.Errorf("response is not a packet")
	}
	return results, nil
}

// isNotFound reports whether err is a Plesk "object not found" answer
func isNotFound(err error) bool {
	var terr *transport.Error
	if !errors.As(err, &terr) || terr.Kind != transport.KindPanel {
		return false
	}
	return terr.PanelCode == errObjectNotFound ||
		strings.Contains(strings.ToLower(terr.Message), "does not exist")
}

// errorMessage extracts errtext from a non-2xx response body
func errorMessage(body []byte) string {
	results, err := decodeResults(body)
	if err != nil {
		return ""
	}
	for _, r := range results {
		if r.ErrText != "" {
			return strings.TrimSpace(r.ErrText)
		}
	}
	return ""
}
