package dto

type CreateCategoryRequest struct {
	Name string `json:"name" form:"name"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type DeleteCategoryResponse struct {
	Message             string `json:"message"`
	DeletedApplications int    `json:"deleted_applications"`
	DeletedImages       int    `json:"deleted_images"`
}
