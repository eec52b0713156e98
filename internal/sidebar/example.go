package sidebar

import (
	"fmt"
	"os"

	derrors "github.com/OpenStickCommunity/gp2040-ce-docs/internal/errors"
)

// Example returns the GP2040-CE sidebar definition.
func Example() *Sidebars {
	general := NewCategory("General",
		Doc{ID: "introduction"},
		Doc{ID: "installation"},
		Doc{ID: "usage"},
		Doc{ID: "mini-menu"},
		Doc{ID: "hotkeys"},
		Ref{ID: "web-configurator/web-configurator", Label: "Web Configurator"},
		Doc{ID: "rgb-leds"},
		Doc{ID: "getting-help-support"},
	)
	general.Collapsed = false

	faq := NewCategory("FAQ",
		Doc{ID: "faq/faq-general"},
		Doc{ID: "faq/faq-console-compatibility"},
		Doc{ID: "faq/faq-troubleshooting"},
	)
	faq.Collapsed = false

	building := NewCategory("Controller Building",
		Doc{ID: "controller-build/wiring"},
		Doc{ID: "controller-build/usb-host"},
	)
	building.Collapsed = false

	menu := NewCategory("Web Configurator Menu", Autogenerated{DirName: "web-configurator/menu-pages"})
	menu.Collapsed = false

	addons := NewCategory("Add-Ons", Autogenerated{DirName: "add-ons"})
	addons.Collapsed = false

	return New().
		Set("docSidebar", general, faq, building).
		Set("webConfigSidebar", Doc{ID: "web-configurator/web-configurator"}, menu, addons).
		Set("contributeSidebar", Autogenerated{DirName: "contribute"})
}

// Init writes the example sidebar definition to path, refusing to overwrite
// an existing file unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.ConfigError(fmt.Sprintf("sidebar file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	}
	data, err := Marshal(Example())
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryInternal, "failed to marshal example sidebars").Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write sidebar file").
			WithContext("path", path).
			Build()
	}
	return nil
}
