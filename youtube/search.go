package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// locationRadiusRe validates radius strings like "1.2km" or "500m".
var locationRadiusRe = regexp.MustCompile(`^[0-9.]+(?:m|km|ft|mi)$`)

// SearchTopics maps human-readable topic names to the Freebase topic IDs the
// search endpoint accepts.
var SearchTopics = map[string]string{
	"Music (parent topic)":               "/m/04rlf",
	"Christian music":                    "/m/02mscn",
	"Classical music":                    "/m/0ggq0m",
	"Country":                            "/m/01lyv",
	"Electronic music":                   "/m/02lkt",
	"Hip hop music":                      "/m/0glt670",
	"Independent music":                  "/m/05rwpb",
	"Jazz":                               "/m/03_d0",
	"Music of Asia":                      "/m/028sqc",
	"Music of Latin America":             "/m/0g293",
	"Pop music":                          "/m/064t9",
	"Reggae":                             "/m/06cqb",
	"Rhythm and blues":                   "/m/06j6l",
	"Rock music":                         "/m/06by7",
	"Soul music":                         "/m/0gywn",
	"Gaming (parent topic)":              "/m/0bzvm2",
	"Action game":                        "/m/025zzc",
	"Action-adventure game":              "/m/02ntfj",
	"Casual game":                        "/m/0b1vjn",
	"Music video game":                   "/m/02hygl",
	"Puzzle video game":                  "/m/04q1x3q",
	"Racing video game":                  "/m/01sjng",
	"Role-playing video game":            "/m/0403l3g",
	"Simulation video game":              "/m/021bp2",
	"Sports game":                        "/m/022dc6",
	"Strategy video game":                "/m/03hf_rm",
	"Sports (parent topic)":              "/m/06ntj",
	"American football":                  "/m/0jm_",
	"Baseball":                           "/m/018jz",
	"Basketball":                         "/m/018w8",
	"Boxing":                             "/m/01cgz",
	"Cricket":                            "/m/09xp_",
	"Football":                           "/m/02vx4",
	"Golf":                               "/m/037hz",
	"Ice hockey":                         "/m/03tmr",
	"Mixed martial arts":                 "/m/01h7lh",
	"Motorsport":                         "/m/0410tth",
	"Tennis":                             "/m/07bs0",
	"Volleyball":                         "/m/07_53",
	"Entertainment (parent topic)":       "/m/02jjt",
	"Humor":                              "/m/09kqc",
	"Movies":                             "/m/02vxn",
	"Performing arts":                    "/m/05qjc",
	"Professional wrestling":             "/m/066wd",
	"TV shows":                           "/m/0f2f9",
	"Lifestyle (parent topic)":           "/m/019_rr",
	"Fashion":                            "/m/032tl",
	"Fitness":                            "/m/027x7n",
	"Food":                               "/m/02wbm",
	"Hobby":                              "/m/03glg",
	"Pets":                               "/m/068hy",
	"Physical attractiveness [Beauty]":   "/m/041xxh",
	"Technology":                         "/m/07c1v",
	"Tourism":                            "/m/07bxq",
	"Vehicles":                           "/m/07yv9",
	"Society (parent topic)":             "/m/098wr",
	"Business":                           "/m/09s1f",
	"Health":                             "/m/0kt51",
	"Military":                           "/m/01h6rj",
	"Politics":                           "/m/05qt0",
	"Religion":                           "/m/06bvp",
	"Knowledge":                          "/m/01k8wb",
}

// Location is a latitude/longitude pair for location-bounded searches.
type Location struct {
	Latitude  float64
	Longitude float64
}

// SearchOptions narrows a video search. Zero values mean "not set"; enum
// fields are validated against the values the search endpoint documents.
type SearchOptions struct {
	Term                      string
	RegionCode                string // ISO 3166-1 alpha-2
	LanguageCode              string // ISO 639-1
	Since                     *time.Time
	Until                     *time.Time
	Order                     string // default "date"
	ChannelID                 string
	ChannelType               string
	EventType                 string // requires ChannelType
	Topic                     string // key of SearchTopics
	VideoType                 string
	Location                  *Location // requires LocationRadius
	LocationRadius            string
	SafeSearch                string
	VideoCaption              string
	VideoDefinition           string
	VideoDimension            string
	VideoEmbeddable           string
	VideoPaidProductPlacement string
	VideoSyndicated           string
	VideoLicense              string
	VideoCategoryID           string
}

func enum(name, value string, allowed ...string) error {
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return errors.Errorf("%s must be one of: %s", name, strings.Join(allowed, ", "))
}

func (o *SearchOptions) params() (url.Values, error) {
	params := url.Values{}
	params.Set("type", "video")
	params.Set("part", "snippet")

	order := o.Order
	if order == "" {
		order = "date"
	}
	if err := enum("order", order, "date", "rating", "relevance", "title", "videoCount", "viewCount"); err != nil {
		return nil, err
	}
	params.Set("order", order)

	if term := strings.TrimSpace(o.Term); term != "" {
		params.Set("q", term)
	}
	if o.RegionCode != "" {
		params.Set("regionCode", o.RegionCode)
	}
	if o.LanguageCode != "" {
		params.Set("relevanceLanguage", o.LanguageCode)
	}
	if o.Since != nil {
		params.Set("publishedAfter", o.Since.UTC().Format(time.RFC3339))
	}
	if o.Until != nil {
		params.Set("publishedBefore", o.Until.UTC().Format(time.RFC3339))
	}
	if o.ChannelID != "" {
		params.Set("channelId", o.ChannelID)
	}
	if err := enum("channel_type", o.ChannelType, "any", "show"); err != nil {
		return nil, err
	}
	if o.ChannelType != "" {
		params.Set("channelType", o.ChannelType)
	}
	if o.EventType != "" {
		if o.ChannelType == "" {
			return nil, errors.New("channel_type must be specified if event_type is provided")
		}
		if err := enum("event_type", o.EventType, "completed", "live", "upcoming"); err != nil {
			return nil, err
		}
		params.Set("eventType", o.EventType)
	}
	if o.Topic != "" {
		id, ok := SearchTopics[o.Topic]
		if !ok {
			return nil, errors.Errorf("unknown topic %q, see youtube.SearchTopics", o.Topic)
		}
		params.Set("topicId", id)
	}
	if err := enum("video_type", o.VideoType, "any", "movie", "episode"); err != nil {
		return nil, err
	}
	if o.VideoType != "" {
		params.Set("videoType", o.VideoType)
	}
	if o.Location != nil || o.LocationRadius != "" {
		if o.Location == nil || o.LocationRadius == "" {
			return nil, errors.New("both location and location_radius must be specified")
		}
		if !locationRadiusRe.MatchString(o.LocationRadius) {
			return nil, errors.New("location_radius must be a float followed by the unit m, km, ft or mi, like '1.2km'")
		}
		params.Set("location", fmt.Sprintf("%v,%v", o.Location.Latitude, o.Location.Longitude))
		params.Set("locationRadius", o.LocationRadius)
	}
	if err := enum("safe_search", o.SafeSearch, "moderate", "none", "strict"); err != nil {
		return nil, err
	}
	if o.SafeSearch != "" {
		params.Set("safeSearch", o.SafeSearch)
	}
	if err := enum("video_caption", o.VideoCaption, "any", "closedCaption", "none"); err != nil {
		return nil, err
	}
	if o.VideoCaption != "" {
		params.Set("videoCaption", o.VideoCaption)
	}
	if err := enum("video_definition", o.VideoDefinition, "any", "high", "standard"); err != nil {
		return nil, err
	}
	if o.VideoDefinition != "" {
		params.Set("videoDefinition", o.VideoDefinition)
	}
	if err := enum("video_dimension", o.VideoDimension, "2d", "3d", "any"); err != nil {
		return nil, err
	}
	if o.VideoDimension != "" {
		params.Set("videoDimension", o.VideoDimension)
	}
	if err := enum("video_embeddable", o.VideoEmbeddable, "any", "true"); err != nil {
		return nil, err
	}
	if o.VideoEmbeddable != "" {
		params.Set("videoEmbeddable", o.VideoEmbeddable)
	}
	if err := enum("video_paid_product_placement", o.VideoPaidProductPlacement, "any", "true"); err != nil {
		return nil, err
	}
	if o.VideoPaidProductPlacement != "" {
		params.Set("videoPaidProductPlacement", o.VideoPaidProductPlacement)
	}
	if err := enum("video_syndicated", o.VideoSyndicated, "any", "true"); err != nil {
		return nil, err
	}
	if o.VideoSyndicated != "" {
		params.Set("videoSyndicated", o.VideoSyndicated)
	}
	if err := enum("video_license", o.VideoLicense, "any", "creativeCommons", "youtube"); err != nil {
		return nil, err
	}
	if o.VideoLicense != "" {
		params.Set("videoLicense", o.VideoLicense)
	}
	if o.VideoCategoryID != "" {
		params.Set("videoCategoryId", o.VideoCategoryID)
	}
	return params, nil
}

// VideoSearch walks the videos matching the given options. Search results
// carry only a snippet, so most statistics fields of the yielded records stay
// nil; follow up with VideosInfo for the full shape.
func (c *Client) VideoSearch(opts SearchOptions) *Iterator[Video] {
	params, err := opts.params()
	if err != nil {
		return NewIterator(func() ([]Video, bool, error) {
			return nil, false, err
		})
	}
	return paginate(c, "search", params, ParseVideo)
}
