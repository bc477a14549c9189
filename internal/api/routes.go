package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Use(handler.LoadCurrentUser)
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/", handler.ShowHome)
	app.Get("/login", handler.ShowLoginPage)
	app.Post("/login", handler.Login)
	app.Get("/register", handler.ShowRegisterPage)
	app.Post("/register", handler.Register)
	app.Get("/info", handler.ShowInfo)
	app.Post("/info", handler.ShowInfo)
	app.Get("/news", handler.ShowFeed)
	app.Post("/news", handler.ShowFeed)

	app.Get("/logout", handler.AuthRequired, handler.Logout)
	app.Get("/add_habit", handler.AuthRequired, handler.ShowAddHabitPage)
	app.Post("/add_habit", handler.AuthRequired, handler.AddHabit)
	app.Get("/add_habit/:id", handler.AuthRequired, handler.ShowRepostHabitPage)
	app.Post("/add_habit/:id", handler.AuthRequired, handler.RepostHabit)
	app.Get("/com_add/:id", handler.AuthRequired, handler.ShowAddCommentPage)
	app.Post("/com_add/:id", handler.AuthRequired, handler.AddComment)
	app.Get("/add_news", handler.AuthRequired, handler.ShowAddNewsPage)
	app.Post("/add_news", handler.AuthRequired, handler.AddNews)
	app.Get("/office", handler.AuthRequired, handler.ShowOffice)
	app.Post("/office", handler.AuthRequired, handler.UpdateOffice)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	v1 := app.Group("/api/v1")

	users := v1.Group("/users")
	users.Get("", handler.ListUsersAPI)
	users.Get("/:id", handler.GetUserAPI)
	users.Post("", JSONOnly, handler.CreateUserAPI)
	users.Put("/:id", handler.AuthRequired, JSONOnly, handler.UpdateUserAPI)
	users.Delete("/:id", handler.AuthRequired, handler.DeleteUserAPI)

	news := v1.Group("/news")
	news.Get("", handler.ListNewsAPI)
	news.Get("/:id", handler.GetNewsAPI)
	news.Post("", handler.AuthRequired, JSONOnly, handler.CreateNewsAPI)
	news.Put("/:id", handler.AuthRequired, JSONOnly, handler.UpdateNewsAPI)
	news.Delete("/:id", handler.AuthRequired, handler.DeleteNewsAPI)

	habits := v1.Group("/habits")
	habits.Get("", handler.ListHabitsAPI)
	habits.Get("/:id", handler.GetHabitAPI)
	habits.Post("", handler.AuthRequired, JSONOnly, handler.CreateHabitAPI)
	habits.Put("/:id", handler.AuthRequired, JSONOnly, handler.UpdateHabitAPI)
	habits.Delete("/:id", handler.AuthRequired, handler.DeleteHabitAPI)

	comments := v1.Group("/comments")
	comments.Get("", handler.ListCommentsAPI)
	comments.Get("/:id", handler.GetCommentAPI)
	comments.Post("", handler.AuthRequired, JSONOnly, handler.CreateCommentAPI)
	comments.Put("/:id", handler.AuthRequired, JSONOnly, handler.UpdateCommentAPI)
	comments.Delete("/:id", handler.AuthRequired, handler.DeleteCommentAPI)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
