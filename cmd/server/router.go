package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/unboxus/unbox-server/internal/handlers"
	"github.com/unboxus/unbox-server/internal/middleware"
	"github.com/unboxus/unbox-server/pkg/auth"
)

func APIEndpoints(r *gin.Engine, roomH *handlers.RoomHandler, answerH *handlers.AnswerHandler, sessionH *handlers.SessionHandler, wsH *handlers.WebSocketHandler, tokens *auth.HostTokenManager) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-Token"},
		AllowCredentials: true,
	}))

	r.GET("/ws/rooms/:id", wsH.Subscribe)

	api := r.Group("/api/v1")
	{
		rooms := api.Group("/rooms")
		{
			rooms.POST("", roomH.CreateRoom)
			rooms.GET("/code/:code", roomH.GetRoomByCode)
			rooms.GET("/:id", roomH.GetRoom)
			rooms.GET("/:id/report", roomH.GetReport)
			rooms.GET("/:id/participants", answerH.GetGrouped)
			rooms.POST("/:id/answers", answerH.Submit)

			host := rooms.Group("")
			host.Use(middleware.HostAuth(tokens))
			{
				host.POST("/:id/status", roomH.UpdateStatus)
				host.POST("/:id/question-index", roomH.UpdateQuestionIndex)
			}
		}

		answers := api.Group("/answers")
		answers.Use(middleware.HostAuth(tokens))
		{
			answers.POST("/:id/toggle-reveal", answerH.ToggleReveal)
		}

		api.GET("/questions/defaults", roomH.GetDefaultQuestions)

		session := api.Group("/session")
		{
			session.POST("", sessionH.Save)
			session.GET("", sessionH.Get)
			session.DELETE("", sessionH.Clear)
		}
	}
}
