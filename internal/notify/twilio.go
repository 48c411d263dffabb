package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/barber-slots/internal/models"
)

var errNoPhone = errors.New("follower has no phone number")

// TwilioSender texts followers who left a phone number.
type TwilioSender struct {
	client *twilio.RestClient
	from   string
}

func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
	}
}

func (s *TwilioSender) Send(ctx context.Context, to models.Follower, n SlotsOpened) error {
	if to.Phone == "" {
		return errNoPhone
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to.Phone)
	params.SetFrom(s.from)
	params.SetBody(Message(n))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	return nil
}

// Message is the text a follower reads.
func Message(n SlotsOpened) string {
	name := n.BarberName
	if name == "" {
		name = "Your barber"
	}
	times := make([]string, 0, len(n.Starts))
	for _, s := range n.Starts {
		if i := strings.LastIndex(s, " "); i >= 0 {
			s = s[i+1:]
		}
		times = append(times, s)
	}
	return fmt.Sprintf("%s has opened new slots on %s: %s", name, n.Date, strings.Join(times, ", "))
}
