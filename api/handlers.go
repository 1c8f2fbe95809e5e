// Package api exposes the search service over HTTP using gin.
package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/Newspicel/imdb-go/internal/errors"
	"github.com/Newspicel/imdb-go/model"
	"github.com/Newspicel/imdb-go/services"
)

// API holds dependencies for API handlers: the title and name searchers.
type API struct {
	titles services.TitleSearcher
	names  services.NameSearcher
}

// NewAPI creates a new API handler structure.
func NewAPI(titles services.TitleSearcher, names services.NameSearcher) *API {
	return &API{titles: titles, names: names}
}

// SetupRoutes defines all the API routes for the search service.
func SetupRoutes(router *gin.Engine, titles services.TitleSearcher, names services.NameSearcher) {
	apiHandler := NewAPI(titles, names)

	router.GET("/health", apiHandler.HealthCheckHandler)

	// /search is an alias kept for clients that predate the /titles prefix.
	router.GET("/search", apiHandler.SearchTitlesHandler)
	router.GET("/titles/search", apiHandler.SearchTitlesHandler)
	router.GET("/names/search", apiHandler.SearchNamesHandler)
	router.GET("/titles/:tconst", apiHandler.GetTitleHandler)
	router.GET("/names/:nconst", apiHandler.GetNameHandler)
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "imdb-go",
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	})
}

// SearchTitlesHandler handles title searches: free text plus structured
// filters, all via query parameters.
func (api *API) SearchTitlesHandler(c *gin.Context) {
	req := services.TitleSearchRequest{
		Query:      c.Query("query"),
		TitleTypes: c.QueryArray("title_type"),
		Genres:     c.QueryArray("genres"),
	}

	var ok bool
	if req.Limit, ok = parseLimit(c); !ok {
		return
	}
	if req.StartYear, ok = parseRange(c, "start_year_min", "start_year_max"); !ok {
		return
	}
	if req.EndYear, ok = parseRange(c, "end_year_min", "end_year_max"); !ok {
		return
	}
	if req.Rating, ok = parseRange(c, "min_rating", "max_rating"); !ok {
		return
	}
	if req.Votes, ok = parseRange(c, "min_votes", "max_votes"); !ok {
		return
	}

	sortMode, err := model.ParseSortMode(c.Query("sort"))
	if err != nil {
		SendInvalidQueryError(c, "Invalid sort parameter: "+err.Error())
		return
	}
	req.Sort = sortMode

	response, err := api.titles.SearchTitles(req)
	if err != nil {
		if errors.Is(err, internalErrors.ErrInvalidQuery) {
			SendInvalidQueryError(c, err.Error())
			return
		}
		SendSearchError(c, "title search", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// SearchNamesHandler handles person searches.
func (api *API) SearchNamesHandler(c *gin.Context) {
	req := services.NameSearchRequest{
		Query:       c.Query("query"),
		Professions: c.QueryArray("primary_profession"),
	}

	var ok bool
	if req.Limit, ok = parseLimit(c); !ok {
		return
	}
	if req.BirthYear, ok = parseRange(c, "birth_year_min", "birth_year_max"); !ok {
		return
	}

	response, err := api.names.SearchNames(req)
	if err != nil {
		if errors.Is(err, internalErrors.ErrInvalidQuery) {
			SendInvalidQueryError(c, err.Error())
			return
		}
		SendSearchError(c, "name search", err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetTitleHandler retrieves a specific title by tconst.
func (api *API) GetTitleHandler(c *gin.Context) {
	id := c.Param("tconst")
	result, err := api.titles.GetTitle(id)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, id)
			return
		}
		SendSearchError(c, "title lookup", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetNameHandler retrieves a specific person by nconst.
func (api *API) GetNameHandler(c *gin.Context) {
	id := c.Param("nconst")
	result, err := api.names.GetName(id)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, id)
			return
		}
		SendSearchError(c, "name lookup", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// parseLimit reads the optional limit parameter. A zero return with ok=true
// means "use the default"; clamping happens in the search service. On a
// malformed value the 400 response has already been sent.
func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		SendInvalidQueryError(c, "Invalid limit parameter: "+raw)
		return 0, false
	}
	return limit, true
}

// parseRange reads an optional inclusive numeric range from two query
// parameters. On a malformed value the 400 response has already been sent.
func parseRange(c *gin.Context, minParam, maxParam string) (services.RangeFilter, bool) {
	var filter services.RangeFilter
	var ok bool
	if filter.Min, ok = parseBound(c, minParam); !ok {
		return services.RangeFilter{}, false
	}
	if filter.Max, ok = parseBound(c, maxParam); !ok {
		return services.RangeFilter{}, false
	}
	return filter, true
}

func parseBound(c *gin.Context, param string) (*float64, bool) {
	raw := c.Query(param)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		SendInvalidQueryError(c, "Invalid "+param+" parameter: "+raw)
		return nil, false
	}
	return &value, true
}
