package main

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"secretaria/cmd/internal/http/handler"
)

type routes struct {
	kanban   *handler.DefaultKanbanRoute
	apostila *handler.DefaultApostilaRoute
	client   *handler.DefaultClientRoute
	aluno    *handler.DefaultAlunoRoute
	alert    *handler.DefaultAlertRoute
	user     *handler.DefaultUserRoute
	ws       *handler.DefaultWSRoute
}

func registerRoutes(e *echo.Echo, auth echo.MiddlewareFunc, r *routes) {
	api := e.Group("/api", auth)

	// Kanban
	api.GET("/kanban", r.kanban.GetBoard)
	api.GET("/kanban/cards/:id", r.kanban.GetCard)
	api.PATCH("/kanban/cards/:id", r.kanban.UpdateCard)
	api.POST("/kanban/cards/:id/mover", r.kanban.MoveCard)
	api.POST("/kanban/cards/:id/finalizar", r.kanban.FinalizeCard)

	// Apostilas
	api.GET("/apostilas", r.apostila.List)
	api.POST("/apostilas", r.apostila.Create)
	api.POST("/apostilas/:id/iniciar-correcao", r.apostila.StartCorrection)
	api.POST("/apostilas/:id/finalizar-correcao", r.apostila.FinishCorrection)
	api.POST("/apostilas/:id/confirmar-entrega", r.apostila.ConfirmDelivery)
	api.POST("/apostilas/:id/desfazer-inicio-correcao", r.apostila.UndoStartCorrection)
	api.POST("/apostilas/:id/desfazer-correcao", r.apostila.UndoFinishCorrection)
	api.POST("/apostilas/:id/desfazer-entrega", r.apostila.UndoDelivery)

	// Clients
	api.GET("/clients", r.client.List)
	api.GET("/clients/:id", r.client.Get)
	api.PATCH("/clients/:id", r.client.Update)
	api.POST("/clients/:id/reset", r.client.Reset)
	api.DELETE("/clients/:id", r.client.Delete)

	// Alunos & turmas
	api.GET("/alunos", r.aluno.List)
	api.GET("/alunos/:id", r.aluno.Get)
	api.PUT("/alunos/:id/foto", r.aluno.UploadPhoto)
	api.DELETE("/alunos/:id/foto", r.aluno.DeletePhoto)
	api.POST("/alunos/:id/reposicoes", r.aluno.CreateReposicao)
	api.GET("/turmas", r.aluno.ListTurmas)
	api.GET("/turmas/reposicao/datas", r.aluno.MakeupDates)

	// Alerts
	api.GET("/alertas", r.alert.List)
	api.POST("/alertas/verificar", r.alert.RunCheck)

	// Users
	api.GET("/users/me", r.user.GetMe)

	// API Gateway websocket integration
	e.POST("/ws/connect", r.ws.HandleConnect, auth)
	e.POST("/ws/disconnect", r.ws.HandleDisconnect)
	e.POST("/ws/message", r.ws.HandleMessage)

	// Docker Compose healthcheck
	e.GET("/health", healthCheckRoute)
}

func healthCheckRoute(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
