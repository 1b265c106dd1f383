package service

import "strings"

// chatGreeting opens every new session.
const chatGreeting = "Hi! Welcome to Movemate support. How can we help you today?"

// cannedReplies are keyword-matched bot answers, checked in order. First
// match wins; the fallback closes the list.
var cannedReplies = []struct {
	keywords []string
	reply    string
}{
	{
		keywords: []string{"track", "where"},
		reply:    "You can track your shipment on our Track Shipment page using your tracking ID (format MM-LX-XXXXX). Would you like anything else?",
	},
	{
		keywords: []string{"delay", "late", "slow"},
		reply:    "Sorry to hear your package seems delayed. Delays are usually resolved within 24 hours; check the timeline on the tracking page for the latest checkpoint. If it has not moved in 48 hours, please open a support ticket.",
	},
	{
		keywords: []string{"address", "change", "update"},
		reply:    "To update a delivery address, please open a support ticket with your tracking ID and the new address before the package is out for delivery.",
	},
	{
		keywords: []string{"price", "cost", "quote"},
		reply:    "Shipping cost depends on weight, category and route. Request a shipment on our site and you will see the estimate before confirming.",
	},
	{
		keywords: []string{"human", "agent", "person"},
		reply:    "I am connecting you with a human agent. The support team has been notified and will join this conversation shortly.",
	},
}

const botFallbackReply = "I am not sure I can answer that. You can browse our FAQ, or type \"agent\" to talk to a human."

// botReply returns the canned answer for a visitor message while the session
// is in bot mode.
func botReply(content string) string {
	lowered := strings.ToLower(content)
	for _, c := range cannedReplies {
		for _, k := range c.keywords {
			if strings.Contains(lowered, k) {
				return c.reply
			}
		}
	}
	return botFallbackReply
}
