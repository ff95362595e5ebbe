package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/davifernandodias/dsin-assessment-tech/internal/httperr"
)

var (
	errRangeNotNumeric = errors.New("initial/limit must be numbers")
	errRangeInvalid    = errors.New("invalid initial/limit range")
)

// listRange translates the initial/limit wire parameters into an
// offset and a row count. A page is the rows [initial, limit).
func listRange(initialStr, limitStr string) (int, int, error) {
	initial, err1 := strconv.Atoi(initialStr)
	limit, err2 := strconv.Atoi(limitStr)
	if err1 != nil || err2 != nil {
		return 0, 0, errRangeNotNumeric
	}

	if initial < 0 || limit < 0 || limit < initial {
		return 0, 0, errRangeInvalid
	}

	return initial, limit - initial, nil
}

func parseListRange(c *gin.Context) (int, int, bool) {
	offset, count, err := listRange(c.Query("initial"), c.Query("limit"))
	if err != nil {
		if errors.Is(err, errRangeNotNumeric) {
			httperr.BadRequest(c, "invalid_pagination", "'initial' e 'limit' são obrigatórios e devem ser números.")
		} else {
			httperr.BadRequest(c, "invalid_pagination", "Parâmetros inválidos de 'initial' e 'limit'.")
		}
		return 0, 0, false
	}

	return offset, count, true
}
