package ginx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ftaorigin/common/model"
	"ftaorigin/internal/app/pkg/errorx"
)

func TestFromError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantType string
	}{
		{"not found", fmt.Errorf("determine: %w", errorx.ErrPartNotFound), http.StatusNotFound, model.ResponseTypeNotFound},
		{"cyclic", &errorx.CycleError{Path: []string{"A", "B", "A"}}, http.StatusUnprocessableEntity, model.ResponseTypeUnprocessable},
		{"lookup", errorx.Lookup("get part", errors.New("db down")), http.StatusInternalServerError, model.ResponseTypeInternalError},
		{"queue", errorx.ErrQueueUnavailable, http.StatusServiceUnavailable, model.ResponseTypeInternalError},
		{"business", errorx.NewBusinessError(http.StatusConflict, "part already exists"), http.StatusConflict, model.ResponseTypeValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			FromError(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var resp model.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Meta.Code)
			assert.Equal(t, tt.wantType, resp.Meta.Type)
			assert.Equal(t, tt.err.Error(), resp.Meta.Message)
		})
	}
}

func TestProcessing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Processing(c, ProcessingData{RequestID: "r", PartID: "P", JobID: "j"})

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, CodeProcessing, resp.Meta.Code)
	assert.Equal(t, model.ResponseTypeProcessing, resp.Meta.Type)
}
