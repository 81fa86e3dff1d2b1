package openapi

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"libwebdoc/internal/config"
	"libwebdoc/internal/exporter/common"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format selects the serialization of the generated document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

const openAPIVersion = "3.0.3"

// OpenAPIExporter constructs an OpenAPI document from the documented methods.
// GET parameters become query parameters, POST parameters a JSON body.
type OpenAPIExporter struct {
	format Format
}

func NewOpenAPIExporter(format Format) *OpenAPIExporter {
	if format != FormatYAML {
		format = FormatJSON
	}
	return &OpenAPIExporter{format: format}
}

func (b *OpenAPIExporter) Export(site *model.Site, cfg *config.Config) error {
	if site == nil || site.Summary == nil {
		return fmt.Errorf("nothing to export")
	}

	doc := Build(site)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode openapi document: %w", err)
	}
	if b.format == FormatYAML {
		if data, err = toYAML(data); err != nil {
			return err
		}
	}

	outputFile := cfg.GetOutputPath("openapi." + string(b.format))
	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return err
	}

	logger.Info("   🧩 OpenAPI document written: %s", filepath.Base(outputFile))
	return nil
}

// Build assembles the document. Every method lives at "/<page path>/<name>".
func Build(site *model.Site) *openapi3.T {
	title := "API"
	if ns := site.Summary.Namespace; ns != "" {
		title = ns + " API"
	}

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       title,
			Version:     "1.0.0",
			Description: "Generated on " + site.Summary.AnalysisDate,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, class := range common.SortClasses(site.Classes) {
		for _, m := range class.Methods {
			path := "/" + class.PagePath() + "/" + m.Name
			doc.AddOperation(path, string(m.Verb), buildOperation(class, m))
		}
	}

	return doc
}

func buildOperation(class model.ClassDoc, m model.MethodRecord) *openapi3.Operation {
	op := &openapi3.Operation{
		Summary:     m.Name,
		Description: strings.TrimSpace(m.Description),
		OperationID: operationID(class, m),
		Tags:        []string{class.PagePath()},
	}

	roots := common.BuildParamTree(m.Parameters)

	switch m.Verb {
	case model.VerbPOST:
		if len(roots) > 0 {
			body := openapi3.NewObjectSchema()
			for _, node := range roots {
				body.Properties[node.Record.Leaf()] = openapi3.NewSchemaRef("", buildSchema(node))
			}
			op.RequestBody = &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().WithJSONSchema(body),
			}
		}
	default:
		for _, node := range roots {
			param := openapi3.NewQueryParameter(node.Record.Leaf()).
				WithDescription(node.Record.Description).
				WithSchema(buildSchema(node))
			op.Parameters = append(op.Parameters, &openapi3.ParameterRef{Value: param})
		}
	}

	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Successful response"),
		}),
	)

	return op
}

// buildSchema maps a parameter node to a schema: wrapped collections become
// arrays, nodes with children objects, everything else a string.
func buildSchema(node *common.ParamNode) *openapi3.Schema {
	var schema *openapi3.Schema

	switch {
	case node.IsArray():
		schema = openapi3.NewArraySchema()
		schema.Items = openapi3.NewSchemaRef("", buildSchema(node.Children[0]))
	case len(node.Children) > 0:
		schema = openapi3.NewObjectSchema()
		for _, child := range node.Children {
			schema.Properties[child.Record.Leaf()] = openapi3.NewSchemaRef("", buildSchema(child))
		}
	default:
		schema = openapi3.NewStringSchema()
	}

	schema.Description = node.Record.Description
	return schema
}

func operationID(class model.ClassDoc, m model.MethodRecord) string {
	return strings.ReplaceAll(class.PagePath(), "/", "_") + "_" + m.Method
}

// toYAML re-encodes a JSON document as YAML, keeping key order
func toYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert openapi document: %w", err)
	}
	out, err := yaml.Marshal(&node)
	if err != nil {
		return nil, fmt.Errorf("failed to encode openapi yaml: %w", err)
	}
	return out, nil
}
