// Package validator checks mutation inputs before they reach the store.
// Errors carry short machine-readable codes; the store turns any of them
// into a silent no-op.
package validator

import (
	"fmt"

	playground "github.com/go-playground/validator/v10"
)

var validate = playground.New(playground.WithRequiredStructEnabled())

func ServerName(name string) error {
	if err := validate.Var(name, "required,max=64"); err != nil {
		return fmt.Errorf("bad_server_name")
	}
	return nil
}

func Username(name string) error {
	if err := validate.Var(name, "required,min=2,max=32"); err != nil {
		return fmt.Errorf("bad_username")
	}
	return nil
}

func Status(status string) error {
	if err := validate.Var(status, "oneof=online idle dnd offline"); err != nil {
		return fmt.Errorf("bad_status")
	}
	return nil
}

func BannerColor(color string) error {
	if err := validate.Var(color, "omitempty,hexcolor"); err != nil {
		return fmt.Errorf("bad_color")
	}
	return nil
}

func VideoTitle(title string) error {
	if err := validate.Var(title, "required,max=128"); err != nil {
		return fmt.Errorf("bad_video_title")
	}
	return nil
}

// MediaRef covers avatars, icons, thumbnails and uploaded media alike: the
// store treats them as opaque references and only bounds their size.
func MediaRef(ref string) error {
	if err := validate.Var(ref, "required,max=2048"); err != nil {
		return fmt.Errorf("bad_media_ref")
	}
	return nil
}
