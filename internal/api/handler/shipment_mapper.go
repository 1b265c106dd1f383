package handler

import (
	"github.com/movemate/logistics-api/internal/core/domain"
	"github.com/movemate/logistics-api/internal/core/ports"
)

// --- Service result → HTTP response ---

func toShipmentResponse(s *domain.Shipment) shipmentResponse {
	timeline := make([]timelineEventResponse, len(s.Timeline))
	for i, ev := range s.Timeline {
		timeline[i] = timelineEventResponse{
			ID:          ev.ID,
			Status:      ev.Status,
			Location:    ev.Location,
			Timestamp:   ev.Timestamp.UTC(),
			Description: ev.Description,
			Completed:   ev.Completed,
		}
	}

	return shipmentResponse{
		TrackingID:         s.TrackingID,
		SenderName:         s.SenderName,
		SenderPhone:        s.SenderPhone,
		ReceiverName:       s.ReceiverName,
		ReceiverPhone:      s.ReceiverPhone,
		PickupLocation:     s.PickupLocation,
		DeliveryLocation:   s.DeliveryLocation,
		CurrentLocation:    s.CurrentLocation,
		PackageDescription: s.PackageDescription,
		Weight:             s.WeightKg,
		Category:           string(s.Category),
		Status:             string(s.Status),
		StatusDescription:  s.Status.Description(),
		ProgressPercent:    s.Status.ProgressPercent(),
		EstimatedDelivery:  s.EstimatedDelivery.UTC(),
		CreatedAt:          s.CreatedAt.UTC(),
		UpdatedAt:          s.UpdatedAt.UTC(),
		Timeline:           timeline,
		Route:              toRouteResponse(s),
	}
}

// toRouteResponse feeds the route-map view: each free-text location is split
// into a city head and a country remainder, and the truck position uses the
// route progress scale, which deliberately differs from the tracking-card one.
func toRouteResponse(s *domain.Shipment) routeResponse {
	return routeResponse{
		Origin:          toRoutePoint(s.PickupLocation),
		Current:         toRoutePoint(s.CurrentLocation),
		Destination:     toRoutePoint(s.DeliveryLocation),
		ProgressPercent: s.Status.RouteProgressPercent(),
	}
}

func toRoutePoint(location string) routePointResponse {
	city, country := domain.SplitLocation(location)
	return routePointResponse{City: city, Country: country}
}

func toListShipmentsResponse(shipments []*domain.Shipment) listShipmentsResponse {
	data := make([]shipmentResponse, len(shipments))
	for i, s := range shipments {
		data[i] = toShipmentResponse(s)
	}
	return listShipmentsResponse{Data: data, Total: len(data)}
}

func toTicketResponse(t *domain.Ticket) ticketResponse {
	replies := make([]ticketReplyResponse, len(t.Responses))
	for i, r := range t.Responses {
		replies[i] = ticketReplyResponse{
			ID:        r.ID,
			Message:   r.Message,
			IsAdmin:   r.IsAdmin,
			Timestamp: r.Timestamp.UTC(),
		}
	}

	return ticketResponse{
		TicketID:  t.TicketID,
		Name:      t.Name,
		Email:     t.Email,
		Subject:   t.Subject,
		Message:   t.Message,
		Category:  string(t.Category),
		Status:    string(t.Status),
		Responses: replies,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

func toListTicketsResponse(tickets []*domain.Ticket) listTicketsResponse {
	data := make([]ticketResponse, len(tickets))
	for i, t := range tickets {
		data[i] = toTicketResponse(t)
	}
	return listTicketsResponse{Data: data, Total: len(data)}
}

func toChatSessionResponse(s *domain.ChatSession) chatSessionResponse {
	messages := make([]chatMessageResponse, len(s.Messages))
	for i, m := range s.Messages {
		messages[i] = chatMessageResponse{
			ID:        m.ID,
			Content:   m.Content,
			IsBot:     m.IsBot,
			IsAgent:   m.IsAgent,
			Timestamp: m.Timestamp.UTC(),
		}
	}

	return chatSessionResponse{
		SessionID:     s.SessionID,
		CustomerName:  s.CustomerName,
		CustomerEmail: s.CustomerEmail,
		Language:      s.Language,
		Status:        string(s.Status),
		IsBot:         s.IsBot,
		UnreadCount:   s.UnreadCount,
		Version:       s.Version,
		Messages:      messages,
		CreatedAt:     s.CreatedAt.UTC(),
		UpdatedAt:     s.UpdatedAt.UTC(),
	}
}

func toListChatSessionsResponse(sessions []*domain.ChatSession) listChatSessionsResponse {
	data := make([]chatSessionResponse, len(sessions))
	for i, s := range sessions {
		data[i] = toChatSessionResponse(s)
	}
	return listChatSessionsResponse{Data: data, Total: len(data)}
}

func toAnalyticsResponse(r *ports.AnalyticsReport) analyticsResponse {
	return analyticsResponse{
		Total:                r.Total,
		Delivered:            r.Delivered,
		InTransit:            r.InTransit,
		Pending:              r.Pending,
		PickedUp:             r.PickedUp,
		DeliveryRate:         r.DeliveryRate,
		OnTimeRate:           r.OnTimeRate,
		AvgDeliveryDays:      r.AvgDeliveryDays,
		StatusDistribution:   toNamedCounts(r.StatusDistribution),
		WeeklyTrend:          toWeeklyTrend(r.WeeklyTrend),
		CategoryDistribution: toNamedCounts(r.CategoryDistribution),
	}
}

func toNamedCounts(counts []ports.NamedCount) []namedCountResponse {
	out := make([]namedCountResponse, len(counts))
	for i, c := range counts {
		out[i] = namedCountResponse{Name: c.Name, Value: c.Value}
	}
	return out
}

func toWeeklyTrend(points []ports.WeeklyTrendPoint) []weeklyTrendPointResponse {
	out := make([]weeklyTrendPointResponse, len(points))
	for i, p := range points {
		out[i] = weeklyTrendPointResponse{
			Day:       p.Day,
			Shipments: p.Shipments,
			Delivered: p.Delivered,
		}
	}
	return out
}
