package payments

// SubmitUTRRequest carries the buyer's bank transaction reference.
type SubmitUTRRequest struct {
	UTR string `json:"utr" binding:"required,utr"`
}

// RejectRequest carries the admin's rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=200"`
}
