package pvoutput

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
)

const (
	varSystemName   = "var systemName = "
	varTimezone     = "var timezone = "
	varLongitude    = "var lng = "
	varLatitude     = "var lat = "
	varLocalTimes   = "var cats = "
	varPowerOutputs = "var dataPowerOut = "
)

// ParsePage extracts plant telemetry from an intraday page. The data lives in
// variable declarations inside the second to last script element.
func ParsePage(r io.Reader, sourceURL string) (*domain.PlantSamples, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	scripts := collectScripts(doc)
	if len(scripts) < 2 {
		return nil, fmt.Errorf("found %d script elements: %w", len(scripts), domain.ErrTelemetryNotFound)
	}

	plant, err := parseScript(scripts[len(scripts)-2])
	if err != nil {
		return nil, err
	}
	plant.SourceURL = sourceURL

	if err := plant.Validate(); err != nil {
		return nil, err
	}

	return plant, nil
}

func collectScripts(n *html.Node) []string {
	var scripts []string

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.DataAtom == atom.Script {
			var b strings.Builder
			for child := node.FirstChild; child != nil; child = child.NextSibling {
				if child.Type == html.TextNode {
					b.WriteString(child.Data)
				}
			}
			scripts = append(scripts, b.String())
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)

	return scripts
}

func parseScript(script string) (*domain.PlantSamples, error) {
	plant := &domain.PlantSamples{}
	var haveTimes, haveOutputs bool

	for _, statement := range strings.Split(script, ";") {
		statement = strings.TrimSpace(statement)

		switch {
		case strings.Contains(statement, varSystemName):
			plant.Name = unquote(valueOf(statement))
		case strings.Contains(statement, varTimezone):
			plant.TimeZone = unquote(valueOf(statement))
		case strings.Contains(statement, varLongitude):
			lng, err := strconv.ParseFloat(valueOf(statement), 64)
			if err != nil {
				return nil, fmt.Errorf("longitude: %w", err)
			}
			plant.Longitude = lng
		case strings.Contains(statement, varLatitude):
			lat, err := strconv.ParseFloat(valueOf(statement), 64)
			if err != nil {
				return nil, fmt.Errorf("latitude: %w", err)
			}
			plant.Latitude = lat
		case strings.Contains(statement, varLocalTimes):
			plant.LocalTimes = arrayItems(statement)
			haveTimes = true
		case strings.Contains(statement, varPowerOutputs):
			items := arrayItems(statement)
			outputs := make([]int64, 0, len(items))
			for _, item := range items {
				v, err := strconv.ParseInt(item, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("power output %q: %w", item, err)
				}
				outputs = append(outputs, v)
			}
			plant.PowerOutputs = outputs
			haveOutputs = true
		}
	}

	if !haveTimes || !haveOutputs {
		return nil, domain.ErrTelemetryNotFound
	}

	return plant, nil
}

func valueOf(statement string) string {
	_, value, _ := strings.Cut(statement, " = ")
	return strings.TrimSpace(value)
}

func unquote(s string) string {
	return strings.ReplaceAll(s, "'", "")
}

// arrayItems reads the elements of a single-line JS array literal.
func arrayItems(statement string) []string {
	_, rest, ok := strings.Cut(statement, "[")
	if !ok {
		return []string{}
	}
	body, _, _ := strings.Cut(rest, "]")
	body = strings.TrimSpace(unquote(body))
	if body == "" {
		return []string{}
	}

	parts := strings.Split(body, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.TrimSpace(p))
	}
	return items
}
