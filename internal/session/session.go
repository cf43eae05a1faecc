// session — жизненный цикл локальной сессии пользователя.
//
// Manager — единственный владелец состояния сессии: экраны/команды читают
// снимок через Current и вызывают четыре операции (Restore/SignIn/SignOut/
// UpdateUser), но никогда не пишут в состояние напрямую. Зависимости
// (хранилище и приёмник токена) внедряются конструктором — никаких
// глобальных переменных.
//
// Инвариант: user и access-токен выставляются и сбрасываются только
// вместе. Состояний ровно три: Uninitialized (Loading=true) →
// Authenticated | Unauthenticated. Машины обновления токена нет: 401 от
// бэкенда означает "сессия истекла", требуется повторный вход.
//
// TODO: задействовать refresh-токен для продления сессии, когда бэкенд
// опубликует эндпойнт обмена.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/chillnow/chillnow-client/internal/apierrors"
	"github.com/chillnow/chillnow-client/internal/credstore"
	"github.com/chillnow/chillnow-client/internal/models"
	"github.com/chillnow/chillnow-client/pkg/log"
	"github.com/chillnow/chillnow-client/pkg/redact"
)

// Фиксированные версионированные ключи хранилища учётных данных.
const (
	KeyUser         = "v1_user"
	KeyAccessToken  = "v1_access_token"
	KeyRefreshToken = "v1_refresh_token"
)

// Сообщения валидации входа (совпадают с текстами продукта).
const (
	msgIncompleteCredentials = "Données de connexion incomplètes"
	msgInvalidUser           = "Données utilisateur invalides"
)

// TokenSink — приёмник bearer-токена по умолчанию (реализуется api.Client).
// Связь однонаправленная: Manager конфигурирует приёмник, приёмник
// никогда не пишет обратно в сессию или хранилище.
type TokenSink interface {
	SetAuthToken(token string)
	ClearAuthToken()
}

// Session — снимок состояния сессии на момент вызова.
// User != nil ⇔ AccessToken != "" (инвариант Manager).
type Session struct {
	User         *models.User
	AccessToken  string
	RefreshToken string
	// Loading — true только до завершения первичного Restore.
	Loading bool
}

// Authenticated сообщает, есть ли активная сессия.
func (s Session) Authenticated() bool { return s.User != nil && s.AccessToken != "" }

// Manager управляет жизненным циклом сессии.
type Manager struct {
	store credstore.Store
	sink  TokenSink

	// mu сериализует операции жизненного цикла: одновременные
	// SignIn/SignOut не интерливятся, а выполняются по очереди.
	mu      sync.Mutex
	user    *models.User
	access  string
	refresh string
	loading bool
}

// New создаёт Manager. Сессия пуста и находится в состоянии загрузки
// до первого Restore.
func New(store credstore.Store, sink TokenSink) *Manager {
	return &Manager{
		store:   store,
		sink:    sink,
		loading: true,
	}
}

// Current возвращает снимок сессии.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.snapshotLocked()
}

// Restore восстанавливает сессию из хранилища при старте процесса.
//
// Сессия валидна, только если присутствуют все три ключа и блоб
// пользователя разбирается в корректную запись. Частичное или битое
// состояние трактуется как отсутствующее: все три ключа зачищаются,
// сессия остаётся пустой. Прочие отказы чтения тоже деградируют в
// "не аутентифицирован", но ключи сохраняются до следующего запуска.
// Restore никогда не возвращает ошибку наружу. Loading снимается
// на всех путях.
func (m *Manager) Restore(ctx context.Context) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	defer func() { m.loading = false }()

	var userBlob, access, refresh string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		userBlob, err = m.store.Get(gctx, KeyUser)
		return err
	})
	g.Go(func() (err error) {
		access, err = m.store.Get(gctx, KeyAccessToken)
		return err
	})
	g.Go(func() (err error) {
		refresh, err = m.store.Get(gctx, KeyRefreshToken)
		return err
	})

	if err := g.Wait(); err != nil {
		// Отсутствие ключа — штатный случай (в том числе частичное:
		// токен без пользователя), остатки зачищаются целиком. Прочие
		// отказы чтения (например, временный сбой диска) деградируют в
		// logged-out, но ключи не трогают: следующий запуск повторит
		// чтение возможно ещё валидных учётных данных.
		if errors.Is(err, credstore.ErrNotFound) {
			m.clearLocked(ctx, true)
		} else {
			log.From(ctx).Error("session_restore_read_failed", "err", err.Error())
			m.clearLocked(ctx, false)
		}

		return m.snapshotLocked()
	}

	user, err := parseUser(userBlob)
	if err != nil {
		log.From(ctx).Warn("session_restore_corrupt_user", "err", err.Error())
		m.clearLocked(ctx, true)
		return m.snapshotLocked()
	}

	m.user = user
	m.access = access
	m.refresh = refresh
	m.sink.SetAuthToken(access)

	log.From(ctx).Debug("session_restored",
		"user_id", user.ID,
		"email", redact.Email(user.Email),
		"role", user.Role,
	)

	return m.snapshotLocked()
}

// SignIn выполняет вход: валидация аргументов, параллельная запись трёх
// ключей, и лишь после успешной записи — токен в приёмник и память.
//
// Семантика для вызывающего "всё или ничего": любой отказ валидации или
// записи приводит к полному откату (зачистка всех ключей, сброс
// токена, пустая память) и возврату исходной ошибки — в том числе когда
// до вызова существовала активная сессия.
func (m *Manager) SignIn(ctx context.Context, access, refresh string, user models.User) error {
	const op = "session.SignIn"

	m.mu.Lock()
	defer m.mu.Unlock()

	// Провал валидации откатывает так же, как провал записи: прежняя
	// сессия (если была) не переживает неудачный вход.
	if access == "" || refresh == "" {
		m.clearLocked(ctx, true)
		return fmt.Errorf("%s: %w", op, apierrors.Validation(msgIncompleteCredentials))
	}
	if user.ID == 0 || user.Email == "" || user.Role == "" {
		m.clearLocked(ctx, true)
		return fmt.Errorf("%s: %w", op, apierrors.Validation(msgInvalidUser))
	}

	blob, err := json.Marshal(user)
	if err != nil {
		m.clearLocked(ctx, true)
		return fmt.Errorf("%s: encode user: %w", op, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return m.store.Set(gctx, KeyUser, string(blob)) })
	g.Go(func() error { return m.store.Set(gctx, KeyAccessToken, access) })
	g.Go(func() error { return m.store.Set(gctx, KeyRefreshToken, refresh) })

	if err := g.Wait(); err != nil {
		log.From(ctx).Error("session_signin_store_failed", "err", err.Error())
		m.clearLocked(ctx, true)
		return fmt.Errorf("%s: %w", op, apierrors.Storage(err))
	}

	m.sink.SetAuthToken(access)
	m.user = &user
	m.access = access
	m.refresh = refresh

	log.From(ctx).Info("session_signed_in",
		"user_id", user.ID,
		"email", redact.Email(user.Email),
		"role", user.Role,
	)

	return nil
}

// SignOut завершает сессию. Память и токен зачищаются даже при отказе
// хранилища: ложное "разлогинен" безопаснее ложного "залогинен".
// Ошибка хранилища возвращается вызывающему. Идемпотентен.
func (m *Manager) SignOut(ctx context.Context) error {
	const op = "session.SignOut"

	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.Remove(ctx, KeyUser, KeyAccessToken, KeyRefreshToken)

	m.sink.ClearAuthToken()
	m.user = nil
	m.access = ""
	m.refresh = ""

	if err != nil {
		log.From(ctx).Error("session_signout_store_failed", "err", err.Error())
		return fmt.Errorf("%s: %w", op, apierrors.Storage(err))
	}

	log.From(ctx).Info("session_signed_out")

	return nil
}

// UpdateUser заменяет запись пользователя: сначала write-through в
// хранилище, память обновляется только после успешной записи. Отказ
// записи возвращается как ошибка — оптимистичного расхождения памяти
// с хранилищем не бывает.
func (m *Manager) UpdateUser(ctx context.Context, user models.User) error {
	const op = "session.UpdateUser"

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.user == nil {
		return fmt.Errorf("%s: %w", op, apierrors.Validation(msgInvalidUser))
	}
	if user.ID == 0 || user.Email == "" || user.Role == "" {
		return fmt.Errorf("%s: %w", op, apierrors.Validation(msgInvalidUser))
	}

	blob, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%s: encode user: %w", op, err)
	}

	if err := m.store.Set(ctx, KeyUser, string(blob)); err != nil {
		log.From(ctx).Error("session_update_user_store_failed", "err", err.Error())
		return fmt.Errorf("%s: %w", op, apierrors.Storage(err))
	}

	m.user = &user

	return nil
}

// clearLocked — зачистка под мьютексом: best-effort удаление ключей
// (removeKeys=true), сброс токена и памяти. Ошибка удаления только
// логируется — зачистка не должна ронять вызывающую операцию.
func (m *Manager) clearLocked(ctx context.Context, removeKeys bool) {
	if removeKeys {
		if err := m.store.Remove(ctx, KeyUser, KeyAccessToken, KeyRefreshToken); err != nil {
			log.From(ctx).Error("session_clear_failed", "err", err.Error())
		}
	}

	m.sink.ClearAuthToken()
	m.user = nil
	m.access = ""
	m.refresh = ""
}

func (m *Manager) snapshotLocked() Session {
	s := Session{
		AccessToken:  m.access,
		RefreshToken: m.refresh,
		Loading:      m.loading,
	}
	if m.user != nil {
		u := *m.user
		s.User = &u
	}

	return s
}

// parseUser разбирает блоб пользователя и проверяет минимально
// обязательные поля валидной сессии.
func parseUser(blob string) (*models.User, error) {
	var user models.User
	if err := json.Unmarshal([]byte(blob), &user); err != nil {
		return nil, err
	}

	if user.ID == 0 || user.Email == "" || user.Role == "" {
		return nil, fmt.Errorf("incomplete user record")
	}

	return &user, nil
}
