package stage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"gitlab.com/stark-bootcamp.net/internal/client/validation"
	"gitlab.com/stark-bootcamp.net/internal/domain"
)

// Rule checks one field; Check returns a failing Result to stop the flow.
type Rule struct {
	Field string
	Check func(Form) validation.Result
}

// Definition is everything that differs between stages.
type Definition struct {
	Stage    int
	Endpoint string
	Rules    []Rule
	Build    func(teamName string, form Form) (Body, error)
}

const filesField = "files"

func required(field, message string) Rule {
	return Rule{Field: field, Check: func(f Form) validation.Result {
		if strings.TrimSpace(f.Field(field)) == "" {
			return validation.Result{Message: message}
		}
		return validation.Result{Valid: true}
	}}
}

func url(field string, kind validation.URLKind) Rule {
	return Rule{Field: field, Check: func(f Form) validation.Result {
		return validation.ValidateURL(f.Field(field), kind)
	}}
}

func atLeastOneFile(message string) Rule {
	return Rule{Field: filesField, Check: func(f Form) validation.Result {
		if len(f.Files) == 0 {
			return validation.Result{Message: message}
		}
		return validation.Result{Valid: true}
	}}
}

func fileSizes(ceiling int64) Rule {
	return Rule{Field: filesField, Check: func(f Form) validation.Result {
		return validation.ValidateFileSize(f.sizes(), ceiling)
	}}
}

// Stage2 submits the repository and hosted links with design files.
func Stage2(ceiling int64) Definition {
	return Definition{
		Stage:    2,
		Endpoint: domain.Round2.Endpoint(),
		Rules: []Rule{
			url("git_hub_link", validation.GitHub),
			url("hosted_link", validation.Any),
			atLeastOneFile("Please upload at least one file."),
			fileSizes(ceiling),
		},
		Build: multipartBuilder("git_hub_link", "hosted_link"),
	}
}

// Stage3 submits Figma links, a description and schematics.
func Stage3(ceiling int64) Definition {
	return Definition{
		Stage:    3,
		Endpoint: domain.Round3.Endpoint(),
		Rules: []Rule{
			required("figma_links", "Figma source link is required."),
			url("figma_links", validation.Figma),
			atLeastOneFile("Please upload at least one interface schematic."),
			fileSizes(ceiling),
		},
		Build: multipartBuilder("figma_links", "description"),
	}
}

// Stage4 submits the logic nodes as JSON.
func Stage4() Definition {
	return Definition{
		Stage:    4,
		Endpoint: domain.Round4.Endpoint(),
		Rules: []Rule{{
			Field: "logic_nodes",
			Check: func(f Form) validation.Result {
				for _, n := range f.Nodes {
					if strings.TrimSpace(n.Condition) != "" && strings.TrimSpace(n.Action) != "" {
						return validation.Result{Valid: true}
					}
				}
				return validation.Result{Message: "Add at least one logic node (condition + action)."}
			},
		}},
		Build: buildLogic,
	}
}

// Stage5 submits the presentation. The codename is checked but never sent.
func Stage5(ceiling int64) Definition {
	return Definition{
		Stage:    5,
		Endpoint: domain.Round5.Endpoint(),
		Rules: []Rule{
			required("codename", "Project Codename is required."),
			required("abstract", "Technical Abstract is required."),
			atLeastOneFile("Please upload at least one file (PDF, PPT, PPTX, KEY, or images)."),
			fileSizes(ceiling),
		},
		Build: func(teamName string, form Form) (Body, error) {
			return encodeMultipart(teamName, []field{
				{"abstract", strings.TrimSpace(form.Field("abstract"))},
				{domain.Round5.ScoreColumn(), "0"},
			}, form.Files)
		},
	}
}

// ForStage returns the definition for stages 2 to 5.
func ForStage(stage int, ceiling int64) (Definition, error) {
	switch stage {
	case 2:
		return Stage2(ceiling), nil
	case 3:
		return Stage3(ceiling), nil
	case 4:
		return Stage4(), nil
	case 5:
		return Stage5(ceiling), nil
	}
	return Definition{}, fmt.Errorf("no submission form for stage %d", stage)
}

type field struct {
	name, value string
}

func multipartBuilder(names ...string) func(string, Form) (Body, error) {
	return func(teamName string, form Form) (Body, error) {
		fields := make([]field, 0, len(names))
		for _, name := range names {
			fields = append(fields, field{name, strings.TrimSpace(form.Field(name))})
		}
		return encodeMultipart(teamName, fields, form.Files)
	}
}

func encodeMultipart(teamName string, fields []field, files []Upload) (Body, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("Team_Name", teamName); err != nil {
		return Body{}, err
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return Body{}, err
		}
	}
	for _, u := range files {
		if err := copyFile(mw, u); err != nil {
			return Body{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return Body{}, err
	}
	return Body{ContentType: mw.FormDataContentType(), Data: buf.Bytes()}, nil
}

func copyFile(mw *multipart.Writer, u Upload) error {
	rc, err := u.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", u.Name, err)
	}
	defer rc.Close()

	part, err := mw.CreateFormFile(filesField, u.Name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("failed to read %s: %w", u.Name, err)
	}
	return nil
}

func buildLogic(teamName string, form Form) (Body, error) {
	nodes := make([]domain.LogicNode, 0, len(form.Nodes))
	for _, n := range form.Nodes {
		nodes = append(nodes, domain.LogicNode{
			Condition: strings.TrimSpace(n.Condition),
			Action:    strings.TrimSpace(n.Action),
		})
	}
	structured, err := marshalNoEscape(nodes)
	if err != nil {
		return Body{}, err
	}

	data, err := marshalNoEscape(domain.Round4Submission{
		TeamName:             teamName,
		StructuredSubmission: string(structured),
		Status:               domain.Round4StatusSubmitted,
		Question:             strings.TrimSpace(form.Field("question")),
		Score:                0,
	})
	if err != nil {
		return Body{}, err
	}
	return Body{ContentType: "application/json", Data: data}, nil
}

// marshalNoEscape keeps characters such as '>' literal.
func marshalNoEscape(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
