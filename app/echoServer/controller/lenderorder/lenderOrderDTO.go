package lenderorder

type UpdateStatusReq struct {
	Status string `json:"status"`
}
