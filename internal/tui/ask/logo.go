package ask

import "charm.land/lipgloss/v2"

// Logo stands in for the DrKube picture next to the form.
const Logo = `     .-"""""-.
   .'  _   _  '.
  /   (o) (o)   \
 |   .-------.   |
 |  ( DrKube  )  |
  \  '-------'  /
   '.  \ | /  .'
     '-._|_.-'
    __/  |  \__
   /  ~ ☸  ~   \`

const (
	logoGap         = 3
	cardOverhead    = 6 // border (2) + horizontal padding (4)
	maxContentWidth = 90
	minLogoWidth    = 100 // narrower terminals drop the logo
)

var logoWidth = lipgloss.Width(Logo)

func (f *Form) showLogo() bool {
	return f.width >= minLogoWidth
}
