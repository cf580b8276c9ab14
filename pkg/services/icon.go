package services

import (
	"encoding/xml"
	"io"
	"strings"

	pkgerrors "github.com/agentstation/hostlists/pkg/errors"
)

// ValidateIcon checks that a service's inline icon is well-formed XML whose
// root element is <svg>. Published catalogs embed this markup directly, so a
// broken icon is a fatal build error, not a warning.
func ValidateIcon(serviceID, iconSVG string) error {
	if strings.TrimSpace(iconSVG) == "" {
		return pkgerrors.NewAssetError(serviceID, "icon", "icon markup is empty")
	}

	decoder := xml.NewDecoder(strings.NewReader(iconSVG))
	decoder.Strict = true

	sawRoot := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return pkgerrors.NewAssetError(serviceID, "icon", "malformed icon markup: "+err.Error())
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if !sawRoot {
			if start.Name.Local != "svg" {
				return pkgerrors.NewAssetError(serviceID, "icon",
					"icon root element is <"+start.Name.Local+">, not <svg>")
			}
			sawRoot = true
		}
	}

	if !sawRoot {
		return pkgerrors.NewAssetError(serviceID, "icon", "icon markup contains no <svg> element")
	}
	return nil
}
