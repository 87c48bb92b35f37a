package server

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/etnz/peerfunds"
	"github.com/gin-gonic/gin"
)

const xlsxType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Download names of the workflow outputs.
const (
	CompareFile  = "查缺补漏数据.xlsx"
	GenerateFile = "completed_peer_fund_table.xlsx"
	MissingFile  = "missing_companies.xlsx"
)

// upload is a form file field and the layout to read it with.
type upload struct {
	field  string
	layout peerfunds.Layout
}

// missingUploadsError lists the form fields sent without a file.
type missingUploadsError []string

func (e missingUploadsError) Error() string {
	return "missing uploads: " + strings.Join(e, ", ")
}

// readUploads decodes every upload. It fails with missingUploadsError before reading
// anything when a field is absent.
func readUploads(c *gin.Context, uploads ...upload) (map[string]*peerfunds.Table, error) {
	var missing missingUploadsError
	for _, u := range uploads {
		if _, err := c.FormFile(u.field); err != nil {
			missing = append(missing, u.field)
		}
	}
	if len(missing) > 0 {
		return nil, missing
	}

	tables := make(map[string]*peerfunds.Table, len(uploads))
	for _, u := range uploads {
		fh, _ := c.FormFile(u.field)
		f, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("could not open upload %q: %w", u.field, err)
		}
		t, err := peerfunds.Decode(f, fh.Filename, u.layout)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("upload %q: %w", u.field, err)
		}
		tables[u.field] = t
	}
	return tables, nil
}

// fail answers err with the matching status code.
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	var (
		missing missingUploadsError
		column  *peerfunds.MissingColumnError
		count   *peerfunds.ColumnCountError
	)
	switch {
	case errors.As(err, &missing):
		status = http.StatusBadRequest
	case errors.As(err, &column), errors.As(err, &count), errors.Is(err, peerfunds.ErrNoSheet):
		status = http.StatusUnprocessableEntity
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// attach answers t as an xlsx download.
func attach(c *gin.Context, name string, t *peerfunds.Table) {
	var buf bytes.Buffer
	if err := peerfunds.EncodeXLSX(&buf, t); err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, xlsxType, buf.Bytes())
}

func (s *Server) compare(c *gin.Context) {
	in, err := readUploads(c,
		upload{"registry", s.cfg.Registry},
		upload{"export", s.cfg.Export},
	)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := peerfunds.Compare(in["registry"], in["export"], s.cfg)
	if err != nil {
		fail(c, err)
		return
	}
	attach(c, CompareFile, res.Table)
}

func (s *Server) generate(c *gin.Context) {
	in, err := readUploads(c,
		upload{"export_a", s.cfg.ExportA},
		upload{"export_b", s.cfg.ExportB},
		upload{"profiles", s.cfg.Profiles},
		upload{"tracked", s.cfg.Tracked},
	)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := peerfunds.Generate(peerfunds.GenerateInput{
		ExportA:  in["export_a"],
		ExportB:  in["export_b"],
		Profiles: in["profiles"],
		Tracked:  in["tracked"],
	}, s.cfg, s.today())
	if err != nil {
		fail(c, err)
		return
	}
	attach(c, GenerateFile, res.Table)
}

func (s *Server) missing(c *gin.Context) {
	in, err := readUploads(c,
		upload{"export_a", s.cfg.ExportA},
		upload{"export_b", s.cfg.ExportB},
		upload{"profiles", s.cfg.Profiles},
	)
	if err != nil {
		fail(c, err)
		return
	}
	res, err := peerfunds.FindMissing(in["export_a"], in["export_b"], in["profiles"], s.cfg)
	if err != nil {
		fail(c, err)
		return
	}
	attach(c, MissingFile, res.Table)
}
