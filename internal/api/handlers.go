package api

import (
	"errors"
	"net/http"

	"babel/internal/dsl"

	"github.com/gin-gonic/gin"
)

type tableRequest struct {
	Name       string `json:"name"`
	Tier       string `json:"tier"`
	Definition string `json:"definition"`
}

type translateRequest struct {
	tableRequest
	Lang string `json:"lang"`
}

// parse failures keep their structured fields all the way out to the
// client; nothing gets wrapped or translated on the way up.
func abortParseError(c *gin.Context, err error) {
	var perr *dsl.ParseError
	if errors.As(err, &perr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  perr.Error(),
			"kind":   perr.Kind,
			"format": perr.Format,
			"input":  perr.Input,
		})
		return
	}
	var derr *dsl.UnsupportedDialectError
	if errors.As(err, &derr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": derr.Error(), "lang": derr.Lang})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

type rowJSON struct {
	Kind    string `json:"kind"` // "attribute" | "dependency"
	Name    string `json:"name,omitempty"`
	Type    string `json:"type,omitempty"`
	Default string `json:"default,omitempty"`
	Comment string `json:"comment,omitempty"`
	Target  string `json:"target,omitempty"`
}

func rowsJSON(rows []dsl.Row) []rowJSON {
	out := make([]rowJSON, 0, len(rows))
	for _, row := range rows {
		switch r := row.(type) {
		case dsl.Attribute:
			out = append(out, rowJSON{
				Kind:    "attribute",
				Name:    r.Name,
				Type:    r.Type.Make(),
				Default: r.Default,
				Comment: r.Comment,
			})
		case dsl.Dependency:
			out = append(out, rowJSON{Kind: "dependency", Target: r.Target})
		}
	}
	return out
}

func tableJSON(st *StoredTable) gin.H {
	out := gin.H{
		"name":       st.Name,
		"tier":       st.Tier,
		"revision":   st.Revision,
		"stored_at":  st.StoredAt,
		"keys":       rowsJSON(st.Table.Keys),
		"attributes": rowsJSON(st.Table.Attributes),
	}
	if st.Table.Comment != nil {
		out["comment"] = st.Table.Comment.Text
	}
	return out
}

// GET /api/tables
func ListTablesHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, storage.List())
	}
}

// POST /api/tables
func CreateTableHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if req.Name == "" || req.Definition == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and definition are required"})
			return
		}

		t, err := dsl.ParseTable(req.Name, req.Definition, req.Tier)
		if err != nil {
			abortParseError(c, err)
			return
		}

		st := storage.Put(t)
		c.JSON(http.StatusCreated, st)
	}
}

// GET /api/tables/:name
func GetTableHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := storage.Get(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		c.JSON(http.StatusOK, tableJSON(st))
	}
}

// DELETE /api/tables/:name
func DeleteTableHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !storage.Delete(c.Param("name")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// GET /api/tables/:name/definition
func DefinitionHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := storage.Get(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}
		c.String(http.StatusOK, st.Table.Definition())
	}
}

// GET /api/tables/:name/declaration?lang=python|matlab
func DeclarationHandler(storage *Storage, defaultLang dsl.Lang) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, ok := storage.Get(c.Param("name"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Table not found"})
			return
		}

		lang := defaultLang
		if q := c.Query("lang"); q != "" {
			var err error
			if lang, err = dsl.ParseLang(q); err != nil {
				abortParseError(c, err)
				return
			}
		}

		out, err := st.Table.Make(lang)
		if err != nil {
			abortParseError(c, err)
			return
		}
		c.String(http.StatusOK, out)
	}
}

// GET /api/tables/:name/keys
func KeysHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("name")
		keys, err := storage.PrimaryKeys(c.Request.Context(), name)
		if err != nil {
			var rerr *dsl.ResolutionError
			if errors.As(err, &rerr) {
				c.JSON(http.StatusNotFound, gin.H{"error": rerr.Error(), "table": rerr.Table})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"table": name, "keys": keys})
	}
}

// POST /api/translate
func TranslateHandler(defaultLang dsl.Lang) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req translateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
			return
		}
		if req.Name == "" || req.Definition == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and definition are required"})
			return
		}

		lang := defaultLang
		if req.Lang != "" {
			var err error
			if lang, err = dsl.ParseLang(req.Lang); err != nil {
				abortParseError(c, err)
				return
			}
		}

		t, err := dsl.ParseTable(req.Name, req.Definition, req.Tier)
		if err != nil {
			abortParseError(c, err)
			return
		}
		out, err := t.Make(lang)
		if err != nil {
			abortParseError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": t.Name, "tier": t.Tier, "lang": lang, "declaration": out})
	}
}

// GET /api/lint
func LintHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		issues := storage.Lint()
		if issues == nil {
			issues = []Issue{}
		}
		c.JSON(http.StatusOK, issues)
	}
}

// GET /api/stores
func StoresHandler(storage *Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, storage.Stores)
	}
}
