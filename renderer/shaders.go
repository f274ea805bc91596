package renderer

// Built-in GLSL ES 1.00 sources. Desktop backends translate them before
// compiling.
//
// The basic program understands every vertex stream a Mesh can carry and
// the three default light structs. A mesh without normals is drawn unlit,
// which is what a skybox needs.

const BasicVertexShader = `
precision mediump float;

attribute vec3 aPosition;
attribute vec4 aColor;
attribute vec2 aTextureCoord;
attribute vec3 aNormal;

uniform mat4 uModelMatrix;
uniform mat4 uViewMatrix;
uniform mat4 uPerspectiveMatrix;
uniform mat3 uNormalMatrix;

uniform bool uUseColor;
uniform bool uUseTexture;
uniform bool uUseNormal;

varying vec4 vColor;
varying vec2 vTextureCoord;
varying vec3 vNormal;
varying vec3 vWorldPosition;

void main(void) {
    vec4 world = uModelMatrix * vec4(aPosition, 1.0);
    vWorldPosition = world.xyz;
    gl_Position = uPerspectiveMatrix * uViewMatrix * world;
    gl_PointSize = 2.0;

    vColor = uUseColor ? aColor : vec4(1.0);
    vTextureCoord = uUseTexture ? aTextureCoord : vec2(0.0);
    vNormal = uUseNormal ? normalize(uNormalMatrix * aNormal) : vec3(0.0);
}
`

const BasicFragmentShader = `
precision mediump float;

struct AmbientLight {
    vec3 color;
};

struct DirectionalLight {
    vec3 color;
    vec3 direction;
};

struct SpotLight {
    float power;
    vec3 position;
    vec3 color;
};

uniform bool uUseTexture;
uniform bool uUseNormal;
uniform sampler2D uTexture;

uniform AmbientLight aLight;
uniform DirectionalLight dLight;
uniform SpotLight sLight;

varying vec4 vColor;
varying vec2 vTextureCoord;
varying vec3 vNormal;
varying vec3 vWorldPosition;

void main(void) {
    vec4 color = vColor;
    if (uUseTexture) {
        color *= texture2D(uTexture, vTextureCoord);
    }

    vec3 lighting = aLight.color;
    if (uUseNormal) {
        lighting += dLight.color * max(dot(vNormal, -normalize(dLight.direction)), 0.0);

        vec3 toLight = sLight.position - vWorldPosition;
        float dist = max(length(toLight), 0.0001);
        lighting += sLight.color * max(dot(vNormal, toLight / dist), 0.0) * sLight.power / dist;
    } else {
        lighting = vec3(1.0);
    }

    gl_FragColor = vec4(color.rgb * lighting, color.a);
}
`
