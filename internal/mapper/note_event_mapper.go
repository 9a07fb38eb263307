package mapper

import (
	"encoding/json"

	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/model"

	"gorm.io/datatypes"
)

type NoteEventMapper struct{}

func NewNoteEventMapper() *NoteEventMapper {
	return &NoteEventMapper{}
}

func (m *NoteEventMapper) ToEntity(e *model.NoteEvent) *entity.NoteEvent {
	if e == nil {
		return nil
	}

	var payload map[string]interface{}
	if len(e.Payload) > 0 {
		// Malformed rows degrade to a nil payload rather than failing a read.
		_ = json.Unmarshal(e.Payload, &payload)
	}

	return &entity.NoteEvent{
		Id:         e.Id,
		Type:       e.Type,
		Payload:    payload,
		OccurredAt: e.OccurredAt,
	}
}

func (m *NoteEventMapper) ToModel(e *entity.NoteEvent) (*model.NoteEvent, error) {
	if e == nil {
		return nil, nil
	}

	var payload datatypes.JSON
	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, err
		}
		payload = datatypes.JSON(raw)
	}

	return &model.NoteEvent{
		Id:         e.Id,
		Type:       e.Type,
		Payload:    payload,
		OccurredAt: e.OccurredAt,
	}, nil
}

func (m *NoteEventMapper) ToEntities(rows []*model.NoteEvent) []*entity.NoteEvent {
	entities := make([]*entity.NoteEvent, len(rows))
	for i, e := range rows {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
