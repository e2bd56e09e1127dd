package handlers

type MessageResponse struct {
	Message string `json:"message"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginToken struct {
	Token string `json:"token"`
}

type BookCreateRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}
