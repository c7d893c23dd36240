package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simaogato/mortgagecalc-backend/internal/domain"
)

// pathID parses the :id segment; on failure the response is already written
func pathID(c *gin.Context, entity string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid "+entity+" id")
		return uuid.Nil, false
	}
	return id, true
}

// pageQuery reads ?page= and ?limit=; out-of-range values are clamped later
func pageQuery(c *gin.Context) (domain.Page, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "page must be an integer")
		return domain.Page{}, false
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(domain.DefaultPageLimit)))
	if err != nil {
		abortWithDetail(c, http.StatusBadRequest, "limit must be an integer")
		return domain.Page{}, false
	}
	return domain.Page{Page: page, Limit: limit}.Normalize(), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithDetail(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
