package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ImportSummaryMailData struct {
	FullName      string           `json:"fullName"`
	BatchID       string           `json:"batchID"`
	InsertedCount int              `json:"insertedCount"`
	ConflictCount int              `json:"conflictCount"`
	Conflicts     []ImportConflict `json:"conflicts"`
	Deadline      string           `json:"deadline"`
}
