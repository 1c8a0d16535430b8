package models

import (
	"reflect"
	"time"
)

type Person struct {
	Name        string `json:"name" bson:"name" validate:"required"`
	Designation string `json:"designation" bson:"designation"`
	Department  string `json:"department,omitempty" bson:"department,omitempty"`
}

type Workshop struct {
	ID                    string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	EventTitle            string    `json:"eventTitle" bson:"eventTitle" gorm:"uniqueIndex;not null"`
	EventStDate           string    `json:"eventStDate" bson:"eventStDate" gorm:"index"`
	EventEndDate          string    `json:"eventEndDate" bson:"eventEndDate"`
	EventStTime           string    `json:"eventStTime" bson:"eventStTime"`
	Category              []string  `json:"category" bson:"category" gorm:"type:jsonb;serializer:json"`
	EventOrganiserDetails []Person  `json:"eventOrganiserDetails" bson:"eventOrganiserDetails" gorm:"type:jsonb;serializer:json"`
	ResourcePersonDetails []Person  `json:"resourcePersonDetails" bson:"resourcePersonDetails" gorm:"type:jsonb;serializer:json"`
	EditAccessUsers       []string  `json:"editAccessUsers" bson:"editAccessUsers" gorm:"type:jsonb;serializer:json"`
	Posters               []string  `json:"posters" bson:"posters" gorm:"type:jsonb;serializer:json"`
	Brochures             []string  `json:"brochures" bson:"brochures" gorm:"type:jsonb;serializer:json"`
	Schedules             []string  `json:"schedules" bson:"schedules" gorm:"type:jsonb;serializer:json"`
	Photos                []string  `json:"photos" bson:"photos" gorm:"type:jsonb;serializer:json"`
	PermissionLetters     []string  `json:"permissionLetters" bson:"permissionLetters" gorm:"type:jsonb;serializer:json"`
	BudgetData            []string  `json:"budgetData" bson:"budgetData" gorm:"type:jsonb;serializer:json"`
	ParticipantLists      []string  `json:"participantLists" bson:"participantLists" gorm:"type:jsonb;serializer:json"`
	Certificates          []string  `json:"certificates" bson:"certificates" gorm:"type:jsonb;serializer:json"`
	ResourcePersonDocs    []string  `json:"resourcePersonDocs" bson:"resourcePersonDocs" gorm:"type:jsonb;serializer:json"`
	AttendanceSheets      []string  `json:"attendanceSheets" bson:"attendanceSheets" gorm:"type:jsonb;serializer:json"`
	Thumbnail             string    `json:"thumbnail" bson:"thumbnail"`
	FeedbackLink          string    `json:"feedbackLink" bson:"feedbackLink"`
	CreatedBy             string    `json:"createdBy" bson:"createdBy" gorm:"index;not null"`
	CreatedAt             time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt" bson:"updatedAt"`
}

// WorkshopRequest is the accepted body for workshop creation. There is no
// createdBy field: the creator always comes from the authenticated identity.
type WorkshopRequest struct {
	EventTitle            string   `json:"eventTitle" validate:"required,max=200"`
	EventStDate           string   `json:"eventStDate"`
	EventEndDate          string   `json:"eventEndDate"`
	EventStTime           string   `json:"eventStTime"`
	Category              []string `json:"category"`
	EventOrganiserDetails []Person `json:"eventOrganiserDetails" validate:"dive"`
	ResourcePersonDetails []Person `json:"resourcePersonDetails" validate:"dive"`
	EditAccessUsers       []string `json:"editAccessUsers"`
	Posters               []string `json:"posters"`
	Brochures             []string `json:"brochures"`
	Schedules             []string `json:"schedules"`
	Photos                []string `json:"photos"`
	PermissionLetters     []string `json:"permissionLetters"`
	BudgetData            []string `json:"budgetData"`
	ParticipantLists      []string `json:"participantLists"`
	Certificates          []string `json:"certificates"`
	ResourcePersonDocs    []string `json:"resourcePersonDocs"`
	AttendanceSheets      []string `json:"attendanceSheets"`
	Thumbnail             string   `json:"thumbnail"`
	FeedbackLink          string   `json:"feedbackLink"`
}

// NewWorkshop builds the stored record for a creation request.
func (r WorkshopRequest) NewWorkshop(id, creator string, now time.Time) *Workshop {
	return &Workshop{
		ID:                    id,
		EventTitle:            r.EventTitle,
		EventStDate:           r.EventStDate,
		EventEndDate:          r.EventEndDate,
		EventStTime:           r.EventStTime,
		Category:              r.Category,
		EventOrganiserDetails: r.EventOrganiserDetails,
		ResourcePersonDetails: r.ResourcePersonDetails,
		EditAccessUsers:       ownerFirst(creator, r.EditAccessUsers),
		Posters:               r.Posters,
		Brochures:             r.Brochures,
		Schedules:             r.Schedules,
		Photos:                r.Photos,
		PermissionLetters:     r.PermissionLetters,
		BudgetData:            r.BudgetData,
		ParticipantLists:      r.ParticipantLists,
		Certificates:          r.Certificates,
		ResourcePersonDocs:    r.ResourcePersonDocs,
		AttendanceSheets:      r.AttendanceSheets,
		Thumbnail:             r.Thumbnail,
		FeedbackLink:          r.FeedbackLink,
		CreatedBy:             creator,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

func ownerFirst(owner string, users []string) []string {
	out := make([]string, 0, len(users)+1)
	out = append(out, owner)
	for _, u := range users {
		if u != owner {
			out = append(out, u)
		}
	}
	return out
}

// WorkshopPatch is a partial update. A nil field is left untouched; a
// supplied field replaces the stored value as a whole. EventTitle and
// CreatedBy cannot be expressed here and are therefore never patched.
type WorkshopPatch struct {
	EventStDate           *string   `json:"eventStDate"`
	EventEndDate          *string   `json:"eventEndDate"`
	EventStTime           *string   `json:"eventStTime"`
	Category              *[]string `json:"category"`
	EventOrganiserDetails *[]Person `json:"eventOrganiserDetails"`
	ResourcePersonDetails *[]Person `json:"resourcePersonDetails"`
	EditAccessUsers       *[]string `json:"editAccessUsers"`
	Posters               *[]string `json:"posters"`
	Brochures             *[]string `json:"brochures"`
	Schedules             *[]string `json:"schedules"`
	Photos                *[]string `json:"photos"`
	PermissionLetters     *[]string `json:"permissionLetters"`
	BudgetData            *[]string `json:"budgetData"`
	ParticipantLists      *[]string `json:"participantLists"`
	Certificates          *[]string `json:"certificates"`
	ResourcePersonDocs    *[]string `json:"resourcePersonDocs"`
	AttendanceSheets      *[]string `json:"attendanceSheets"`
	Thumbnail             *string   `json:"thumbnail"`
	FeedbackLink          *string   `json:"feedbackLink"`
}

// Apply shallow-merges the patch into w and reports whether any stored value
// changed.
func (p WorkshopPatch) Apply(w *Workshop) bool {
	changed := false
	str := func(dst *string, src *string) {
		if src != nil && *dst != *src {
			*dst = *src
			changed = true
		}
	}
	list := func(dst *[]string, src *[]string) {
		if src != nil && !reflect.DeepEqual(*dst, *src) {
			*dst = *src
			changed = true
		}
	}
	people := func(dst *[]Person, src *[]Person) {
		if src != nil && !reflect.DeepEqual(*dst, *src) {
			*dst = *src
			changed = true
		}
	}

	str(&w.EventStDate, p.EventStDate)
	str(&w.EventEndDate, p.EventEndDate)
	str(&w.EventStTime, p.EventStTime)
	list(&w.Category, p.Category)
	people(&w.EventOrganiserDetails, p.EventOrganiserDetails)
	people(&w.ResourcePersonDetails, p.ResourcePersonDetails)
	list(&w.EditAccessUsers, p.EditAccessUsers)
	list(&w.Posters, p.Posters)
	list(&w.Brochures, p.Brochures)
	list(&w.Schedules, p.Schedules)
	list(&w.Photos, p.Photos)
	list(&w.PermissionLetters, p.PermissionLetters)
	list(&w.BudgetData, p.BudgetData)
	list(&w.ParticipantLists, p.ParticipantLists)
	list(&w.Certificates, p.Certificates)
	list(&w.ResourcePersonDocs, p.ResourcePersonDocs)
	list(&w.AttendanceSheets, p.AttendanceSheets)
	str(&w.Thumbnail, p.Thumbnail)
	str(&w.FeedbackLink, p.FeedbackLink)
	return changed
}
