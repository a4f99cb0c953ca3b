package metadomain

import (
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	AdTypeAll                  = "ALL"
	AdTypePoliticalAndIssueAds = "POLITICAL_AND_ISSUE_ADS"
)

// AdsArchiveQuery descreve uma consulta ao endpoint ads_archive
type AdsArchiveQuery struct {
	Countries   []string
	DateMin     string
	DateMax     string
	AdType      string
	Limit       int
	SearchTerms string
	Fields      []string
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// ArchivedAd é um anúncio como devolvido pela Ad Library; todos os campos são opcionais
type ArchivedAd struct {
	ID                         string   `json:"id"`
	AdCreativeBody             string   `json:"ad_creative_body"`
	AdCreativeBodies           []string `json:"ad_creative_bodies"`
	AdCreativeLinkTitles       []string `json:"ad_creative_link_titles"`
	AdCreativeLinkDescriptions []string `json:"ad_creative_link_descriptions"`
	AdCreativeLinkCaptions     []string `json:"ad_creative_link_captions"`
	PageName                   string   `json:"page_name"`
	AdSnapshotURL              string   `json:"ad_snapshot_url"`
	AdDeliveryStartTime        string   `json:"ad_delivery_start_time"`
	AdDeliveryStopTime         string   `json:"ad_delivery_stop_time"`
	Impressions                *Range   `json:"impressions"`
	Spend                      *Range   `json:"spend"`
}

// Range é um intervalo como {"lower_bound":"1000","upper_bound":"1999"}.
// A API às vezes entrega o objeto serializado como string.
type Range struct {
	LowerBound string `json:"lower_bound"`
	UpperBound string `json:"upper_bound"`
}

type rangeAlias Range

func (r *Range) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		if strings.TrimSpace(encoded) == "" {
			return nil
		}
		data = []byte(encoded)
	}

	var alias rangeAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		// intervalo ilegível é tratado como ausente
		return nil
	}
	*r = Range(alias)
	return nil
}

// Lower devolve o limite inferior como inteiro
func (r *Range) Lower() (int, bool) {
	if r == nil {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSpace(r.LowerBound))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Body devolve o primeiro texto de criativo disponível
func (a ArchivedAd) Body() string {
	if a.AdCreativeBody != "" {
		return a.AdCreativeBody
	}
	return first(a.AdCreativeBodies)
}

func (a ArchivedAd) LinkTitle() string {
	return first(a.AdCreativeLinkTitles)
}

func (a ArchivedAd) LinkDescription() string {
	return first(a.AdCreativeLinkDescriptions)
}

// SearchableText junta corpo, página, título e descrição do link para busca por palavras-chave
func (a ArchivedAd) SearchableText() string {
	return strings.Join([]string{a.Body(), a.PageName, a.LinkTitle(), a.LinkDescription()}, " ")
}

func first(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
