package schedule

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-sitter/internal/config"
)

// BuildContacts renders every family as a vCard 4.0 entry so the phone numbers
// can be imported into an address book. Each phone keeps its role as TYPE.
func BuildContacts(families []Family) ([]byte, error) {
	var buf bytes.Buffer
	enc := vcard.NewEncoder(&buf)

	for i := range families {
		if err := enc.Encode(familyCard(&families[i])); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}
	return buf.Bytes(), nil
}

func familyCard(f *Family) vcard.Card {
	card := make(vcard.Card)
	card.SetValue(vcard.FieldVersion, config.VCardVersion)
	card.SetValue(vcard.FieldKind, config.VCardKind)
	card.SetValue(vcard.FieldFormattedName, f.Name)
	card.SetValue(vcard.FieldUID, config.ICalDomain+":"+f.ID)

	for _, role := range f.SortedRoles() {
		card.Add(vcard.FieldTelephone, &vcard.Field{
			Value:  f.Phones[role],
			Params: vcard.Params{vcard.ParamType: {role}},
		})
	}

	if f.Address != "" {
		card.AddAddress(&vcard.Address{StreetAddress: f.Address})
	}
	if f.ActivitiesMap != nil {
		card.Add(vcard.FieldURL, &vcard.Field{Value: f.ActivitiesMap.URL})
	}

	var notes []string
	if kids := ChildrenSummary(f.Children); kids != "" {
		notes = append(notes, fmt.Sprintf(config.FormatNoteKids, kids))
	}
	if f.Pickup != nil {
		notes = append(notes, fmt.Sprintf(config.FormatNotePickup, f.Pickup.Name, f.Pickup.Address))
	}
	if len(notes) > 0 {
		card.SetValue(vcard.FieldNote, strings.Join(notes, config.NoteLineSeparator))
	}

	return card
}
