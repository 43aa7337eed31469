// Package i18n translates user-facing messages. English, Japanese and
// Portuguese are supported; English is the fallback.
package i18n

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLocale        = "en"
	AcceptLanguageHeader = "Accept-Language"
)

var (
	defaultTranslator *Translator
	translatorOnce    sync.Once
)

// Translator looks messages up by key and locale.
type Translator struct {
	messages map[string]map[string]string
}

// NewTranslator creates a translator with the built-in catalogs.
func NewTranslator() *Translator {
	return &Translator{messages: catalogs}
}

// GetTranslator returns the shared translator.
func GetTranslator() *Translator {
	translatorOnce.Do(func() {
		defaultTranslator = NewTranslator()
	})
	return defaultTranslator
}

// Translate returns the message for key in locale, falling back to
// English and then to the key itself.
func (t *Translator) Translate(key, locale string) string {
	if msg, ok := t.messages[locale][key]; ok {
		return msg
	}
	if msg, ok := t.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Translatef formats the translated message with args.
func (t *Translator) Translatef(key, locale string, args ...any) string {
	return fmt.Sprintf(t.Translate(key, locale), args...)
}

// Supported reports whether locale has a catalog.
func Supported(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}

// GetLocale picks the first supported language from Accept-Language, in
// the order the client listed them.
func GetLocale(c *gin.Context) string {
	for _, part := range strings.Split(c.GetHeader(AcceptLanguageHeader), ",") {
		lang := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if base, _, found := strings.Cut(lang, "-"); found {
			lang = base
		}
		lang = strings.ToLower(lang)
		if Supported(lang) {
			return lang
		}
	}
	return DefaultLocale
}

var catalogs = map[string]map[string]string{
	"en": {
		ErrKeyInvalidRequest:      "Invalid request",
		ErrKeyInvalidRequestBody:  "Invalid request body",
		ErrKeyInternalError:       "An unexpected error occurred",
		ErrKeyUnauthorized:        "Unauthorized",
		ErrKeyAPIKeyRequired:      "API key is required",
		ErrKeyInvalidAPIKey:       "Invalid API key",
		ErrKeyNotFound:            "Not found",
		ErrKeyRateLimitExceeded:   "Too many requests, please try again later",
		ErrKeyInvalidToken:        "Invalid or expired token",
		ErrKeyTokenRequired:       "Authentication token is required",
		ErrKeyTimeout:             "The request took too long",
		ErrKeyServiceUnavailable:  "The product catalog is temporarily unavailable",
		ErrKeyUnknownProducts:     "Unknown product IDs: %s",
		ErrKeyTooManyItems:        "Too many items, at most %d per request",
		ErrKeyValidationItems:     "At least one item is required",
		ErrKeyValidationCart:      "At least one cart line with a positive quantity is required",
		ErrKeyValidationContainer: "Container dimensions must be positive",

		SuccessKeyPacked:     "Items packed",
		SuccessKeyFallback:   "No compact arrangement found; showing a stacked estimate",
		SuccessKeyFits:       "Items fit in the container",
		SuccessKeyDoesNotFit: "Items do not fit in the container",
	},
	"ja": {
		ErrKeyInvalidRequest:      "無効なリクエストです",
		ErrKeyInvalidRequestBody:  "リクエスト本文が無効です",
		ErrKeyInternalError:       "予期しないエラーが発生しました",
		ErrKeyUnauthorized:        "認証されていません",
		ErrKeyAPIKeyRequired:      "APIキーが必要です",
		ErrKeyInvalidAPIKey:       "APIキーが無効です",
		ErrKeyNotFound:            "見つかりません",
		ErrKeyRateLimitExceeded:   "リクエストが多すぎます。しばらくしてから再試行してください",
		ErrKeyInvalidToken:        "トークンが無効か期限切れです",
		ErrKeyTokenRequired:       "認証トークンが必要です",
		ErrKeyTimeout:             "リクエストがタイムアウトしました",
		ErrKeyServiceUnavailable:  "商品カタログは一時的に利用できません",
		ErrKeyUnknownProducts:     "存在しない商品IDです: %s",
		ErrKeyTooManyItems:        "商品数が多すぎます (1リクエストあたり最大%d個)",
		ErrKeyValidationItems:     "商品を1つ以上指定してください",
		ErrKeyValidationCart:      "数量が1以上のカート行が必要です",
		ErrKeyValidationContainer: "箱の寸法は正の値で指定してください",

		SuccessKeyPacked:     "梱包サイズを計算しました",
		SuccessKeyFallback:   "最適な配置が見つからないため、積み重ねた場合の概算を表示しています",
		SuccessKeyFits:       "箱に収まります",
		SuccessKeyDoesNotFit: "箱に収まりません",
	},
	"pt": {
		ErrKeyInvalidRequest:      "Requisição inválida",
		ErrKeyInvalidRequestBody:  "Corpo da requisição inválido",
		ErrKeyInternalError:       "Ocorreu um erro inesperado",
		ErrKeyUnauthorized:        "Não autorizado",
		ErrKeyAPIKeyRequired:      "Chave de API é obrigatória",
		ErrKeyInvalidAPIKey:       "Chave de API inválida",
		ErrKeyNotFound:            "Não encontrado",
		ErrKeyRateLimitExceeded:   "Muitas requisições, tente novamente mais tarde",
		ErrKeyInvalidToken:        "Token inválido ou expirado",
		ErrKeyTokenRequired:       "Token de autenticação é obrigatório",
		ErrKeyTimeout:             "A requisição demorou demais",
		ErrKeyServiceUnavailable:  "O catálogo de produtos está temporariamente indisponível",
		ErrKeyUnknownProducts:     "IDs de produto desconhecidos: %s",
		ErrKeyTooManyItems:        "Itens demais, no máximo %d por requisição",
		ErrKeyValidationItems:     "Pelo menos um item é obrigatório",
		ErrKeyValidationCart:      "É necessária ao menos uma linha do carrinho com quantidade positiva",
		ErrKeyValidationContainer: "As dimensões da caixa devem ser positivas",

		SuccessKeyPacked:     "Itens embalados",
		SuccessKeyFallback:   "Nenhum arranjo compacto encontrado; exibindo uma estimativa empilhada",
		SuccessKeyFits:       "Os itens cabem na caixa",
		SuccessKeyDoesNotFit: "Os itens não cabem na caixa",
	},
}
