package contacts

// ContactForm is the public contact form
type ContactForm struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required,min=10,max=5000"`
	Category string `json:"category" validate:"omitempty,oneof=general booking payment technical other"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
}

type AdminListQuery struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Category string `form:"category"`
	Q        string `form:"q"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in-progress resolved closed"`
}

type RespondRequest struct {
	AdminResponse string `json:"adminResponse" validate:"required,max=5000"`
}
