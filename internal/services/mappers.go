package services

import (
	"inkstudio/internal/models/db_models"
	"inkstudio/internal/models/response_models"
	"inkstudio/internal/storage"
)

func toImageResponse(img db_models.Image, store storage.FileStore) response_models.ImageResponse {
	return response_models.ImageResponse{
		ID:        img.ID,
		ClientID:  img.ClientID,
		ArtistID:  img.ArtistID,
		Kind:      img.Kind.String(),
		Filename:  img.Filename,
		Path:      img.Path,
		URL:       store.URL(img.Path),
		Comment:   img.Comment,
		CreatedAt: img.CreatedAt,
	}
}

func toImageResponses(imgs []db_models.Image, store storage.FileStore) []response_models.ImageResponse {
	out := make([]response_models.ImageResponse, 0, len(imgs))
	for _, img := range imgs {
		out = append(out, toImageResponse(img, store))
	}
	return out
}

func toHealingEntryResponse(e db_models.HealingEntry, store storage.FileStore) response_models.HealingEntryResponse {
	resp := response_models.HealingEntryResponse{
		ID:        e.ID,
		ClientID:  e.ClientID,
		Comment:   e.Comment,
		CreatedAt: e.CreatedAt,
		Images:    toImageResponses(e.Images, store),
		Responses: make([]response_models.HealingResponseView, 0, len(e.Responses)),
	}
	if e.Client != nil {
		resp.ClientName = e.Client.Name
	}
	for _, r := range e.Responses {
		resp.Responses = append(resp.Responses, toHealingResponseView(r))
	}
	return resp
}

func toHealingEntryResponses(entries []db_models.HealingEntry, store storage.FileStore) []response_models.HealingEntryResponse {
	out := make([]response_models.HealingEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHealingEntryResponse(e, store))
	}
	return out
}

func toHealingResponseView(r db_models.HealingResponse) response_models.HealingResponseView {
	return response_models.HealingResponseView{
		ID:        r.ID,
		ArtistID:  r.ArtistID,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toArtistSummaries(artists []db_models.Artist) []response_models.ArtistSummary {
	out := make([]response_models.ArtistSummary, 0, len(artists))
	for _, a := range artists {
		out = append(out, response_models.ArtistSummary{ID: a.ID, Name: a.Name, StudioID: a.StudioID})
	}
	return out
}

func toClientSummaries(clients []db_models.Client) []response_models.ClientSummary {
	out := make([]response_models.ClientSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, response_models.ClientSummary{ID: c.ID, Name: c.Name, StudioID: c.StudioID, ArtistID: c.ArtistID})
	}
	return out
}

func toAppointmentResponses(appts []db_models.Appointment) []response_models.AppointmentResponse {
	out := make([]response_models.AppointmentResponse, 0, len(appts))
	for _, a := range appts {
		out = append(out, response_models.AppointmentResponse{
			ID:          a.ID,
			ClientID:    a.ClientID,
			Date:        a.Date,
			Type:        a.Type,
			Description: a.Description,
		})
	}
	return out
}
