package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"

	"secondarymetabolites.org/dfam-cds/internal/data"
	"secondarymetabolites.org/dfam-cds/internal/dfam"
)

type VersionInfo struct {
	Api        string `json:"api"`
	BuildTime  string `json:"build_time"`
	GitVersion string `json:"git_version"`
}

func (app *application) version(c *gin.Context) {
	version_info := VersionInfo{
		Api:        "mirror",
		BuildTime:  viper.GetString("buildTime"),
		GitVersion: viper.GetString("gitVer"),
	}
	c.JSON(http.StatusOK, &version_info)
}

// families answers summary searches from the cached records. The mirror has
// no taxonomy, so clade matches the record's own clade list only and
// clade_relatives is validated but otherwise ignored. Every request decodes
// the whole cache again, so new entries show up without a restart; the cost
// grows with the cache size.
func (app *application) families(c *gin.Context) {
	if _, err := data.ParseRelatives(c.Query("clade_relatives")); err != nil {
		app.clientErrorWithMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	limit := dfam.DefaultLimit
	if raw_limit := c.Query("limit"); raw_limit != "" {
		parsed, err := strconv.Atoi(raw_limit)
		if err != nil || parsed < 0 {
			app.clientErrorWithMessage(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	set, err := app.Models.Families.LoadCached()
	if err != nil {
		app.serverError(c, err)
		return
	}

	clade := c.Query("clade")
	result := data.SearchResult{Results: []data.FamilySummary{}}
	err = set.Each(func(acc string, rec *data.FamilyRecord) error {
		if clade != "" && !rec.InClade(clade) {
			return nil
		}
		result.TotalCount++
		if len(result.Results) < limit {
			result.Results = append(result.Results, rec.Summary())
		}
		return nil
	})
	if err != nil {
		app.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, &result)
}

func (app *application) family(c *gin.Context) {
	raw, err := app.Models.Families.Raw(c.Param("accession"))
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.notFound(c)
		case errors.Is(err, data.ErrInvalidAccession):
			app.clientErrorWithMessage(c, http.StatusBadRequest, err.Error())
		default:
			app.serverError(c, err)
		}
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}
