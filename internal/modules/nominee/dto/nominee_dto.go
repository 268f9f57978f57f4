package dto

type NomineeRequest struct {
	Name              string `json:"name" binding:"required"`
	Relationship      string `json:"relationship" binding:"required"`
	Contact           string `json:"contact" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Address           string `json:"address"`
	PropertyID        string `json:"property_id" binding:"required,uuid"`
	InsuranceID       string `json:"insurance_id" binding:"omitempty,uuid"`
	SharePercentage   int    `json:"share_percentage" binding:"required,min=1,max=100"`
	AdditionalDetails string `json:"additional_details"`
}
