package mail

type LeadNotificationData struct {
	Name            string
	Country         string
	ConfidenceScore int
	ForwardedAt     string
}

type Sender struct {
	Host      string
	Port      int
	User      string
	Password  string
	From      string
	SalesTeam string
}
