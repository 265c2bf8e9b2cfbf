package notifications

// SetTelegramAPIURL points every Telegram destination of svc at apiURL.
func SetTelegramAPIURL(svc Service, apiURL string) {
	fanout, ok := svc.(*fanoutService)
	if !ok {
		return
	}
	for _, s := range fanout.senders {
		if tg, ok := s.(*telegramSender); ok {
			tg.apiURL = apiURL
		}
	}
}

// MailSettings is the parsed form of a mailto destination.
type MailSettings struct {
	Host     string
	Port     string
	Implicit bool
	From     string
	To       []string
}

func ParseMailDestination(destination string) (MailSettings, error) {
	s, err := newMailSender(destination, 0)
	if err != nil {
		return MailSettings{}, err
	}
	return MailSettings{Host: s.host, Port: s.port, Implicit: s.implicit, From: s.from, To: s.to}, nil
}

func RenderMailMessage(destination string, event Event) ([]byte, error) {
	s, err := newMailSender(destination, 0)
	if err != nil {
		return nil, err
	}
	return s.message(event), nil
}

var Redact = redact
