package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/unboxus/unbox-server/internal/game"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{game.ErrRoomNotFound, http.StatusNotFound},
		{game.ErrAnswerNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: nickname is required", game.ErrValidation), http.StatusBadRequest},
		{game.ErrRoomNotAcceptingAnswers, http.StatusConflict},
		{game.ErrRoomNotUnboxing, http.StatusConflict},
		{fmt.Errorf("%w: completed -> collecting", game.ErrInvalidTransition), http.StatusConflict},
		{game.ErrWriteFailed, http.StatusServiceUnavailable},
		{game.ErrCreateFailed, http.StatusServiceUnavailable},
		{game.ErrCodeCollision, http.StatusServiceUnavailable},
		{fmt.Errorf("something else"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("respondError(%v) = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestDefaultQuestionsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &RoomHandler{}
	r.GET("/api/v1/questions/defaults", h.GetDefaultQuestions)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/questions/defaults", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", resp.Code)
	}
	if resp.Body.Len() == 0 {
		t.Fatalf("empty body")
	}
}
