package api

type userPatchInput struct {
	Name     *string `json:"name"`
	Surname  *string `json:"surname"`
	Nickname *string `json:"nickname"`
	Age      *int    `json:"age"`
	Status   *string `json:"status"`
	About    *string `json:"about"`
	Email    *string `json:"email"`
	CityFrom *string `json:"city_from"`
}

type habitCreateInput struct {
	Type      string `json:"type"`
	Period    string `json:"period"`
	AboutLink string `json:"about_link"`
}

type habitPatchInput struct {
	Type      *string `json:"type"`
	Period    *string `json:"period"`
	AboutLink *string `json:"about_link"`
	Count     *int    `json:"count"`
}

type newsCreateInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type newsPatchInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type commentCreateInput struct {
	NewsID  uint   `json:"news_id"`
	Content string `json:"content"`
}

type commentPatchInput struct {
	Content *string `json:"content"`
}
