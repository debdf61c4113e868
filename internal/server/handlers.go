package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gnomegl/ulpdb/pkg/output"
	"github.com/gnomegl/ulpdb/pkg/store"
	"github.com/gnomegl/ulpdb/pkg/ulp"
	"github.com/gnomegl/ulpdb/pkg/webtech"
)

func (s *Server) handleGetEntries(c *gin.Context) {
	entries, err := s.store.AllEntries()
	if err != nil {
		s.fail(c, err)
		return
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleSearchEntries(c *gin.Context) {
	query := c.DefaultQuery("q", "")
	field := c.DefaultQuery("field", "all")

	entries, err := s.store.SearchEntries(query, field)
	if err != nil {
		s.fail(c, err)
		return
	}
	if len(entries) > searchLimit {
		entries = entries[:searchLimit]
	}
	if entries == nil {
		entries = []store.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleStats(c *gin.Context) {
	stats, err := s.store.Stats()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleAddEntries(c *gin.Context) {
	var body struct {
		Entries []ulp.Record `json:"entries"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "entries must be an array"})
		return
	}

	added, err := s.store.AddEntries(body.Entries)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// handleIngest runs an uploaded file through the extraction pipeline and
// persists the accepted records. The response carries the extraction report
// plus the store's own persisted count; the two added counts can differ.
func (s *Server) handleIngest(c *gin.Context) {
	fileName := c.Query("filename")
	if fileName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename query parameter is required"})
		return
	}

	content, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	records, report := s.pipeline.Extract(content, fileName)

	persisted := 0
	if len(records) > 0 {
		persisted, err = s.store.AddEntries(records)
		if err != nil {
			s.fail(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"report": report, "persisted": persisted})
}

// handleExportEntries streams the credential table as a download in the
// requested format (txt, csv or ndjson).
func (s *Server) handleExportEntries(c *gin.Context) {
	format := c.DefaultQuery("format", output.FormatText)

	entries, err := s.store.AllEntries()
	if err != nil {
		s.fail(c, err)
		return
	}

	writer, err := output.NewEntryWriter(c.Writer, format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="ulp_export.`+format+`"`)
	c.Header("Content-Type", exportContentType(format))
	if err := writer.WriteEntries(entries); err != nil {
		// Headers are already out; log instead of rewriting the response.
		s.log.Error().Err(err).Str("format", format).Msg("export write failed")
	}
}

func exportContentType(format string) string {
	switch format {
	case output.FormatCSV:
		return "text/csv; charset=utf-8"
	case output.FormatNDJSON:
		return "application/x-ndjson"
	default:
		return "text/plain; charset=utf-8"
	}
}

func (s *Server) handleDeleteEntries(c *gin.Context) {
	if err := s.store.DeleteAllEntries(); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleGetWebsites(c *gin.Context) {
	sites, err := s.store.AllWebsites()
	if err != nil {
		s.fail(c, err)
		return
	}
	if sites == nil {
		sites = []webtech.Website{}
	}
	c.JSON(http.StatusOK, sites)
}

func (s *Server) handleSearchWebsites(c *gin.Context) {
	query := c.DefaultQuery("q", "")
	byTechnology := c.Query("by") == "technology"

	sites, err := s.store.SearchWebsites(query, byTechnology)
	if err != nil {
		s.fail(c, err)
		return
	}
	if sites == nil {
		sites = []webtech.Website{}
	}
	c.JSON(http.StatusOK, sites)
}

func (s *Server) handleAddWebsites(c *gin.Context) {
	var items []webtech.Website
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be an array of websites"})
		return
	}

	if err := s.store.AddWebsites(items); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleDeleteWebsites deletes one website when ?url= is given, otherwise
// clears all website data. A missing website is reported as success=false,
// not as an error.
func (s *Server) handleDeleteWebsites(c *gin.Context) {
	if url := c.Query("url"); url != "" {
		deleted, err := s.store.DeleteWebsite(url)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": deleted})
		return
	}

	if err := s.store.DeleteAllWebsiteData(); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (s *Server) handleGetTechnologies(c *gin.Context) {
	techs, err := s.store.AllTechnologies()
	if err != nil {
		s.fail(c, err)
		return
	}
	if techs == nil {
		techs = []string{}
	}
	c.JSON(http.StatusOK, techs)
}
