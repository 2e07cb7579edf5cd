package tdameritrade

import (
	"net/url"
	"strconv"
	"strings"

	"pricehistory/internal/feature/pricehistory/domain/entity"
)

type queryParam struct {
	key   string
	value string
}

// BuildQuery はウィンドウ形式に応じたクエリ文字列を組み立てます。
// url.Values.Encodeはキーをソートしてしまうため、APIドキュメントと同じ順序で自前でエンコードします。
// paramsはWithDefaults済みであることを前提とします。
func BuildQuery(apiKey string, params entity.RequestParams, form entity.WindowForm) string {
	var qs []queryParam
	qs = append(qs, queryParam{"apikey", apiKey})

	switch form {
	case entity.FormPeriod:
		qs = append(qs,
			queryParam{"periodType", params.PeriodType},
			queryParam{"period", strconv.Itoa(params.Period)},
			queryParam{"frequencyType", params.FrequencyType},
			queryParam{"frequency", strconv.Itoa(params.Frequency)},
		)
	case entity.FormDateRange:
		qs = append(qs,
			queryParam{"frequencyType", params.FrequencyType},
			queryParam{"frequency", strconv.Itoa(params.Frequency)},
			queryParam{"endDate", strconv.FormatInt(params.EndDate, 10)},
			queryParam{"startDate", strconv.FormatInt(params.StartDate, 10)},
		)
	}

	// 延長取引時間フラグは小文字のリテラルで送る
	qs = append(qs, queryParam{"needExtendedHoursData", entity.FormatFlag(params.NeedExtendedHours())})

	var b strings.Builder
	for i, q := range qs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(q.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(q.value))
	}
	return b.String()
}
